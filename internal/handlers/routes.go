package handlers

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"lenzooadmin/internal/middleware"
	"lenzooadmin/internal/session"
	"lenzooadmin/internal/views"
)

// NewRouter wires every screen. CSRF protection wraps the returned engine.
func NewRouter(d *Deps, sessions *session.Manager, tmpl *template.Template) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.Recovery(d.Log),
		middleware.SecurityHeaders(),
		middleware.Session(sessions),
	)
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(views.Static()))

	r.GET("/healthz", Health(d))
	r.GET("/login", LoginPage(d))
	r.POST("/login", Login(d))
	r.POST("/logout", Logout(d))

	admin := r.Group("/")
	admin.Use(middleware.RequireSession(d.Log))
	{
		admin.GET("/", Dashboard(d))
		admin.GET("/audit", AuditLog(d))

		admin.GET("/profile", Profile(d))
		admin.POST("/profile", UpdateProfile(d))
		admin.POST("/password", ChangePassword(d))

		admin.GET("/users", ListUsers(d))
		admin.GET("/users/:id", UserDetail(d))
		admin.POST("/users/:id/orders", UpdateOrderStatus(d))

		admin.GET("/products", ListProducts(d))
		admin.GET("/products/new", NewProductForm(d))
		admin.POST("/products", CreateProduct(d))
		admin.GET("/products/:id", ProductDetail(d))
		admin.GET("/products/:id/edit", EditProductForm(d))
		admin.POST("/products/:id", UpdateProduct(d))
		deletable(admin, d, deleteProduct)

		admin.GET("/service-types", ListServiceTypes(d))
		admin.GET("/service-types/new", NewServiceTypeForm(d))
		admin.POST("/service-types", SaveServiceType(d))
		admin.GET("/service-types/:id/edit", EditServiceTypeForm(d))
		admin.POST("/service-types/:id", SaveServiceType(d))
		deletable(admin, d, deleteServiceType)

		admin.GET("/plans", ListPlans(d))
		admin.GET("/plans/new", NewPlanForm(d))
		admin.POST("/plans", SavePlan(d))
		admin.GET("/plans/:id/edit", EditPlanForm(d))
		admin.POST("/plans/:id", SavePlan(d))
		deletable(admin, d, deletePlan)

		admin.GET("/memberships", ListMemberships(d))
		admin.GET("/memberships/new", NewMembershipForm(d))
		admin.POST("/memberships", SaveMembership(d))
		admin.GET("/memberships/:id/edit", EditMembershipForm(d))
		admin.POST("/memberships/:id", SaveMembership(d))
		deletable(admin, d, deleteMembership)

		admin.GET("/testimonials", ListTestimonials(d))
		admin.GET("/testimonials/new", NewTestimonialForm(d))
		admin.POST("/testimonials", SaveTestimonial(d))
		admin.GET("/testimonials/:id/edit", EditTestimonialForm(d))
		admin.POST("/testimonials/:id", SaveTestimonial(d))
		admin.POST("/testimonials/:id/index", ReorderTestimonial(d))
		deletable(admin, d, deleteTestimonial)

		admin.GET("/research", ListResearch(d))
		admin.GET("/research/new", NewResearchForm(d))
		admin.POST("/research", SaveResearch(d))
		admin.GET("/research/:id", ResearchDetail(d))
		admin.GET("/research/:id/edit", EditResearchForm(d))
		admin.POST("/research/:id", SaveResearch(d))
		admin.GET("/research/:id/documents/delete", ConfirmResearchDocument(d))
		admin.POST("/research/:id/documents/delete", DeleteResearchDocument(d))
		deletable(admin, d, deleteResearch)

		admin.GET("/contacts", ListContacts(d))
		admin.GET("/contacts/:id", ContactDetail(d))
		admin.POST("/contacts/:id/reply", ReplyToContact(d))
		deletable(admin, d, deleteContact)

		admin.GET("/subscribers", ListSubscribers(d))
		admin.POST("/subscribers/status", SubscriberStatus(d))
		deletable(admin, d, deleteSubscriber)

		admin.GET("/prescriptions", ListPrescriptions(d))
		admin.GET("/prescriptions/:id", PrescriptionDetail(d))
		admin.GET("/transactions", ListTransactions(d))
		admin.GET("/transactions/:id", TransactionDetail(d))

		admin.GET("/faqs", ListFAQs(d))
		admin.GET("/faqs/new", NewFAQForm(d))
		admin.POST("/faqs", SaveFAQ(d))
		admin.GET("/faqs/:id/edit", EditFAQForm(d))
		admin.POST("/faqs/:id", SaveFAQ(d))
		admin.POST("/faqs/:id/active", ToggleFAQ(d))
		deletable(admin, d, deleteFAQ)

		admin.GET("/policies/:type", EditPolicy(d))
		admin.POST("/policies/:type", SavePolicy(d))
	}
	return r
}

// deletable adds the confirm (GET) and perform (POST) routes.
func deletable(g *gin.RouterGroup, d *Deps, del deletion) {
	g.GET(del.listURL+"/:id/delete", ConfirmDelete(d, del))
	g.POST(del.listURL+"/:id/delete", PerformDelete(d, del))
}
