package router

import (
	"github.com/go-chi/chi/v5"

	"stayhub/internal/handlers/auth"
	"stayhub/internal/handlers/booking"
	"stayhub/internal/handlers/gallery"
	"stayhub/internal/handlers/partner"
	"stayhub/internal/handlers/payment"
	"stayhub/internal/handlers/pricing"
	"stayhub/internal/handlers/property"
	"stayhub/internal/handlers/room"
	"stayhub/internal/handlers/setting"
	"stayhub/internal/handlers/user"
)

type DomainHandlers struct {
	Auth     auth.Handler
	User     user.Handler
	Property property.Handler
	Gallery  gallery.Handler
	Room     room.Handler
	Pricing  pricing.Handler
	Booking  booking.Handler
	Payment  payment.Handler
	Partner  partner.Handler
	Setting  setting.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(v1 chi.Router) {
		r.DomainHandlers.Auth.Router(v1)
		r.DomainHandlers.User.Router(v1)
		r.DomainHandlers.Property.Router(v1)
		r.DomainHandlers.Gallery.Router(v1)
		r.DomainHandlers.Room.Router(v1)
		r.DomainHandlers.Pricing.Router(v1)
		r.DomainHandlers.Booking.Router(v1)
		r.DomainHandlers.Payment.Router(v1)
		r.DomainHandlers.Partner.Router(v1)
		r.DomainHandlers.Setting.Router(v1)
	})
}
