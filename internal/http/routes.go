package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/tarpehcare/portal/internal/domain/auth"
	"github.com/tarpehcare/portal/internal/observability/statsd"
	"github.com/tarpehcare/portal/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth        *service.AuthService
	Clients     *service.ClientService
	Caregivers  *service.CaregiverService
	Families    *service.FamilyService
	Shifts      *service.ShiftService
	Messages    *service.MessageService
	Submissions *service.SubmissionService

	CookieName   string
	CookieDomain string
	Metrics      statsd.Sink
	Logger       *slog.Logger
}

// NewRouter creates and configures the portal HTTP router: public form
// endpoints, auth endpoints, and the three guarded portal areas.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	guard := &Guard{
		CookieName:   services.CookieName,
		CookieDomain: services.CookieDomain,
		Metrics:      services.Metrics,
		Logger:       services.Logger,
	}
	authHandlers := &AuthHandlers{
		CookieName:   services.CookieName,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
	// A nil *AuthService must stay a nil interface so the guard fails closed
	// instead of dereferencing it.
	if services.Auth != nil {
		guard.Svc = services.Auth
		authHandlers.Svc = services.Auth
	}
	submissionHandlers := &SubmissionHandlers{Svc: services.Submissions}

	registerPublicRoutes(mux, submissionHandlers)
	registerAuthRoutes(mux, authHandlers, guard)
	registerAdminRoutes(mux, adminHandlers{
		Clients:     &ClientHandlers{Svc: services.Clients},
		Caregivers:  &CaregiverAdminHandlers{Svc: services.Caregivers},
		Families:    &FamilyMemberHandlers{Svc: services.Families},
		Shifts:      &ShiftAdminHandlers{Svc: services.Shifts},
		Messages:    &MessageHandlers{Svc: services.Messages},
		Submissions: submissionHandlers,
	}, guard)
	registerCaregiverRoutes(mux, &CaregiverPortalHandlers{
		Caregivers: services.Caregivers,
		Shifts:     services.Shifts,
	}, &MessageHandlers{Svc: services.Messages}, guard)
	registerFamilyRoutes(mux, &FamilyPortalHandlers{
		Clients: services.Clients,
		Shifts:  services.Shifts,
	}, &MessageHandlers{Svc: services.Messages}, guard)

	return BrowserDetection()(mux)
}

func registerPublicRoutes(mux *http.ServeMux, h *SubmissionHandlers) {
	mux.HandleFunc("POST /api/intakes", h.CreateIntake)
	mux.HandleFunc("POST /api/bookings", h.CreateBooking)
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, guard *Guard) {
	mux.HandleFunc("GET /auth/login", h.BeginProviderLogin)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /auth/login", h.PasswordLogin)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)

	// A caregiver who revisits the login entry point with a live session is
	// forwarded to the dashboard instead of being shown the form again.
	mux.Handle("GET /caregiver/login", guard.ForwardIfLive(
		domainauth.RoleCaregiver,
		"/caregiver/dashboard",
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		}),
	))
}

// crudRoutes groups the handlers for a conventional CRUD resource.
type crudRoutes struct {
	Base       string
	Create     http.HandlerFunc
	List       http.HandlerFunc
	GetByID    http.HandlerFunc
	Update     http.HandlerFunc
	Delete     http.HandlerFunc
	Middleware func(http.Handler) http.Handler
}

func registerCRUD(mux *http.ServeMux, routes crudRoutes) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if routes.Middleware != nil {
			return routes.Middleware(h)
		}
		return h
	}

	mux.Handle("POST "+routes.Base, wrap(routes.Create))
	mux.Handle("GET "+routes.Base, wrap(routes.List))
	mux.Handle("GET "+routes.Base+"/{id}", wrap(routes.GetByID))
	mux.Handle("PUT "+routes.Base+"/{id}", wrap(routes.Update))
	mux.Handle("DELETE "+routes.Base+"/{id}", wrap(routes.Delete))
}

// adminHandlers groups the handler sets mounted under /admin.
type adminHandlers struct {
	Clients     *ClientHandlers
	Caregivers  *CaregiverAdminHandlers
	Families    *FamilyMemberHandlers
	Shifts      *ShiftAdminHandlers
	Messages    *MessageHandlers
	Submissions *SubmissionHandlers
}

func registerAdminRoutes(mux *http.ServeMux, h adminHandlers, guard *Guard) {
	adminOnly := guard.RequireArea(domainauth.RoleAdmin)

	registerCRUD(mux, crudRoutes{
		Base:       "/admin/clients",
		Create:     h.Clients.Create,
		List:       h.Clients.List,
		GetByID:    h.Clients.GetByID,
		Update:     h.Clients.Update,
		Delete:     h.Clients.Delete,
		Middleware: adminOnly,
	})
	registerCRUD(mux, crudRoutes{
		Base:       "/admin/caregivers",
		Create:     h.Caregivers.Create,
		List:       h.Caregivers.List,
		GetByID:    h.Caregivers.GetByID,
		Update:     h.Caregivers.Update,
		Delete:     h.Caregivers.Delete,
		Middleware: adminOnly,
	})
	registerCRUD(mux, crudRoutes{
		Base:       "/admin/shifts",
		Create:     h.Shifts.Create,
		List:       h.Shifts.List,
		GetByID:    h.Shifts.GetByID,
		Update:     h.Shifts.Update,
		Delete:     h.Shifts.Delete,
		Middleware: adminOnly,
	})

	mux.Handle("POST /admin/family-members", adminOnly(http.HandlerFunc(h.Families.Create)))
	mux.Handle("GET /admin/family-members", adminOnly(http.HandlerFunc(h.Families.List)))
	mux.Handle("GET /admin/family-members/{id}", adminOnly(http.HandlerFunc(h.Families.GetByID)))
	mux.Handle("DELETE /admin/family-members/{id}", adminOnly(http.HandlerFunc(h.Families.Delete)))
	mux.Handle("GET /admin/family-members/{id}/clients", adminOnly(http.HandlerFunc(h.Families.ListClientLinks)))
	mux.Handle("PUT /admin/family-members/{id}/clients", adminOnly(http.HandlerFunc(h.Families.ReplaceClientLinks)))

	mux.Handle("GET /admin/intakes", adminOnly(http.HandlerFunc(h.Submissions.ListIntakes)))
	mux.Handle("GET /admin/intakes/{id}", adminOnly(http.HandlerFunc(h.Submissions.GetIntake)))
	mux.Handle("PATCH /admin/intakes/{id}/status", adminOnly(http.HandlerFunc(h.Submissions.UpdateIntakeStatus)))
	mux.Handle("GET /admin/bookings", adminOnly(http.HandlerFunc(h.Submissions.ListBookings)))
	mux.Handle("GET /admin/bookings/{id}", adminOnly(http.HandlerFunc(h.Submissions.GetBooking)))
	mux.Handle("PATCH /admin/bookings/{id}/status", adminOnly(http.HandlerFunc(h.Submissions.UpdateBookingStatus)))

	registerMessageRoutes(mux, "/admin", h.Messages, adminOnly)
}

func registerCaregiverRoutes(
	mux *http.ServeMux,
	h *CaregiverPortalHandlers,
	messages *MessageHandlers,
	guard *Guard,
) {
	caregiverOnly := guard.RequireArea(domainauth.RoleCaregiver)

	mux.Handle("GET /caregiver/profile", caregiverOnly(http.HandlerFunc(h.Profile)))
	mux.Handle("GET /caregiver/dashboard", caregiverOnly(http.HandlerFunc(h.Dashboard)))
	mux.Handle("GET /caregiver/shifts", caregiverOnly(http.HandlerFunc(h.ListShifts)))
	mux.Handle("GET /caregiver/shifts/{id}", caregiverOnly(http.HandlerFunc(h.GetShift)))

	// The check-in area is its own protected prefix so shift state changes
	// can be rate-limited or audited independently of reads.
	mux.Handle("POST /checkin/shifts/{id}/in", caregiverOnly(http.HandlerFunc(h.CheckIn)))
	mux.Handle("POST /checkin/shifts/{id}/out", caregiverOnly(http.HandlerFunc(h.CheckOut)))

	registerMessageRoutes(mux, "/caregiver", messages, caregiverOnly)
}

func registerFamilyRoutes(
	mux *http.ServeMux,
	h *FamilyPortalHandlers,
	messages *MessageHandlers,
	guard *Guard,
) {
	familyOnly := guard.RequireArea(domainauth.RoleFamily)

	mux.Handle("GET /family/clients", familyOnly(http.HandlerFunc(h.ListClients)))
	mux.Handle("GET /family/clients/{id}", familyOnly(http.HandlerFunc(h.GetClient)))
	mux.Handle("GET /family/shifts", familyOnly(http.HandlerFunc(h.ListShifts)))

	registerMessageRoutes(mux, "/family", messages, familyOnly)
}

func registerMessageRoutes(
	mux *http.ServeMux,
	prefix string,
	h *MessageHandlers,
	mw func(http.Handler) http.Handler,
) {
	mux.Handle("GET "+prefix+"/messages", mw(http.HandlerFunc(h.List)))
	mux.Handle("POST "+prefix+"/messages", mw(http.HandlerFunc(h.Post)))
	mux.Handle("POST "+prefix+"/messages/read", mw(http.HandlerFunc(h.MarkRead)))
}
