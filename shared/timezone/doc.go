// Package timezone keeps wall-clock reads in the application timezone
// (APP_TIMEZONE, default Asia/Riyadh). Stay dates are calendar days with no
// zone, so Today and DayOf return them as UTC midnight.
package timezone
