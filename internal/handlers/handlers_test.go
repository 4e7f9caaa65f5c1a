package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lenzooadmin/internal/audit"
	"lenzooadmin/internal/lenzoo"
	"lenzooadmin/internal/richtext"
	"lenzooadmin/internal/session"
	"lenzooadmin/internal/supersede"
	"lenzooadmin/internal/views"
)

type reply struct {
	status int
	body   string
}

type upstreamCall struct {
	method string
	query  url.Values
	auth   string
	body   string
}

// upstream fakes the Lenzoo+ API, answering per endpoint name.
type upstream struct {
	mu      sync.Mutex
	replies map[string]reply
	calls   map[string][]upstreamCall
}

func (u *upstream) set(endpoint string, status int, body string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.replies[endpoint] = reply{status, body}
}

func (u *upstream) callsTo(endpoint string) []upstreamCall {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]upstreamCall(nil), u.calls[endpoint]...)
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	endpoint := strings.TrimPrefix(r.URL.Path, "/api/")
	body, _ := io.ReadAll(r.Body)

	u.mu.Lock()
	u.calls[endpoint] = append(u.calls[endpoint], upstreamCall{
		method: r.Method,
		query:  r.URL.Query(),
		auth:   r.Header.Get("Authorization"),
		body:   string(body),
	})
	rep, ok := u.replies[endpoint]
	u.mu.Unlock()

	if !ok {
		rep = reply{http.StatusNotFound, `{"message":"no such endpoint"}`}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.status)
	_, _ = w.Write([]byte(rep.body))
}

type console struct {
	t       *testing.T
	api     *upstream
	deps    *Deps
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newConsole(t *testing.T) *console {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := &upstream{replies: map[string]reply{}, calls: map[string][]upstreamCall{}}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	deps := &Deps{
		API:      lenzoo.NewClient(srv.URL+"/api", 5*time.Second),
		Audit:    audit.Nop{},
		Editor:   richtext.NewEditor(),
		Searches: supersede.NewGroup(),
		Log:      zap.NewNop(),
		PageSize: 10,
	}
	tmpl, err := views.Templates("https://files.lenzoo.test")
	require.NoError(t, err)
	sessions := session.NewManager([]byte("0123456789abcdef0123456789abcdef"), false)

	return &console{
		t:       t,
		api:     api,
		deps:    deps,
		handler: NewRouter(deps, sessions, tmpl),
		cookies: map[string]*http.Cookie{},
	}
}

func (c *console) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *console) get(path string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, path, nil)
}

func (c *console) post(path string, form url.Values) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, path, form)
}

func (c *console) login(token string) {
	c.t.Helper()
	c.api.set("loginAdmin", http.StatusOK, `{"token":"`+token+`","message":"Login successful","name":"Asha"}`)
	rec := c.post("/login", url.Values{"email": {"admin@lenzoo.test"}, "password": {"secret"}})
	require.Equal(c.t, http.StatusSeeOther, rec.Code)
	require.Equal(c.t, "/", rec.Header().Get("Location"))
}

func TestProtectedScreensRedirectToLogin(t *testing.T) {
	c := newConsole(t)

	rec := c.get("/products")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	page := c.get("/login")
	assert.Contains(t, page.Body.String(), "Please log in to continue.")
	assert.Empty(t, c.api.callsTo("getAllProductsInAdmin"))
}

func TestLoginFailureShowsServerMessageAndStoresNothing(t *testing.T) {
	c := newConsole(t)
	c.api.set("loginAdmin", http.StatusUnauthorized, `{"message":"Invalid email or password"}`)

	rec := c.post("/login", url.Values{"email": {"admin@lenzoo.test"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	page := c.get("/login")
	assert.Contains(t, page.Body.String(), "Invalid email or password")

	assert.Equal(t, http.StatusFound, c.get("/").Code)
}

func TestLoginValidationErrorsStayOnForm(t *testing.T) {
	c := newConsole(t)

	rec := c.post("/login", url.Values{"email": {"not-an-email"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be a valid email address")
	assert.Empty(t, c.api.callsTo("loginAdmin"))
}

func TestExpiredTokenEndsSession(t *testing.T) {
	c := newConsole(t)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("not-our-key"))
	require.NoError(t, err)
	c.login(expired)

	rec := c.get("/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, c.get("/login").Body.String(), "Your session has expired")
}

func TestListProductsRendersRowsWithBearerToken(t *testing.T) {
	c := newConsole(t)
	c.login("tok-1")
	c.api.set("getAllProductsInAdmin", http.StatusOK, `{
		"product": [{"_id":"p1","name":"Aviator Gold","productType":"Sunglasses","originalPrice":100,"sellingPrice":80,"images":["uploads/a.jpg"]}],
		"totalPages": 3, "totalCount": 21, "currentPage": 2
	}`)

	rec := c.get("/products?page=2&search=avi")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Aviator Gold")
	assert.Contains(t, body, "https://files.lenzoo.test/uploads/a.jpg")
	assert.Contains(t, body, "20%")
	assert.Contains(t, body, "/products/p1/delete")
	assert.Contains(t, body, "21 total")

	calls := c.api.callsTo("getAllProductsInAdmin")
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer tok-1", calls[0].auth)
	assert.Equal(t, "2", calls[0].query.Get("page"))
	assert.Equal(t, "avi", calls[0].query.Get("search"))
}

func TestListCarriesViewThroughSearchAndPager(t *testing.T) {
	c := newConsole(t)
	c.login("tok")
	c.api.set("getAllProductsInAdmin", http.StatusOK, `{"product":[{"_id":"p1","name":"Aviator Gold"}],"totalPages":3,"totalCount":21,"currentPage":1}`)

	body := c.get("/products?view=tab-a").Body.String()
	assert.Contains(t, body, `name="view" value="tab-a"`)
	assert.Contains(t, body, "view=tab-a")
	assert.NotContains(t, c.api.callsTo("getAllProductsInAdmin")[0].query, "view")
}

func TestListFailureShowsBannerNotServerError(t *testing.T) {
	c := newConsole(t)
	c.login("tok")
	c.api.set("getAllUsers", http.StatusInternalServerError, `{"message":"database unavailable"}`)

	rec := c.get("/users")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "database unavailable")
	assert.NotContains(t, rec.Body.String(), "No records found")
}

func TestEmptyListSaysNoRecords(t *testing.T) {
	c := newConsole(t)
	c.login("tok")
	c.api.set("getAllSubscribers", http.StatusOK, `{"subscribers":[],"totalPages":0,"totalCount":0}`)

	rec := c.get("/subscribers")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No records found")
}

func TestDeleteNeedsConfirmationAndCallsOnce(t *testing.T) {
	c := newConsole(t)
	c.login("tok")
	c.api.set("deleteProduct", http.StatusOK, `{"success":true,"message":"Product deleted"}`)

	confirm := c.get("/products/p1/delete")
	assert.Equal(t, http.StatusOK, confirm.Code)
	assert.Contains(t, confirm.Body.String(), `action="/products/p1/delete"`)
	assert.Empty(t, c.api.callsTo("deleteProduct"))

	rec := c.post("/products/p1/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/products", rec.Header().Get("Location"))

	calls := c.api.callsTo("deleteProduct")
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"id":"p1"}`, calls[0].body)
}

func TestDeleteFailureKeepsAdminOnList(t *testing.T) {
	c := newConsole(t)
	c.login("tok")
	c.api.set("deleteFAQ", http.StatusBadRequest, `{"message":"FAQ is in use"}`)
	c.api.set("getAllFAQs", http.StatusOK, `{"faqs":[]}`)

	rec := c.post("/faqs/f1/delete", url.Values{})
	assert.Equal(t, "/faqs", rec.Header().Get("Location"))
	assert.Contains(t, c.get("/faqs").Body.String(), "FAQ is in use")
}

func TestCreateProductRejectsSellingAboveOriginal(t *testing.T) {
	c := newConsole(t)
	c.login("tok")

	rec := c.post("/products", url.Values{
		"name":          {"Round Classic"},
		"title":         {"Classic"},
		"originalPrice": {"50"},
		"sellingPrice":  {"70"},
		"productType":   {"Eyeglasses"},
		"suitableFor":   {"Oval"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "must not exceed originalPrice")
	assert.Contains(t, rec.Body.String(), `value="Round Classic"`)
	assert.Empty(t, c.api.callsTo("addProduct"))
}

func TestUpdateProductValidatesBeforeAnyCall(t *testing.T) {
	c := newConsole(t)
	c.login("tok")
	c.api.set("getProductById", http.StatusOK, `{"product":{"_id":"p1","images":["a.jpg"]}}`)

	rec := c.post("/products/p1", url.Values{
		"name":          {"Round Classic"},
		"title":         {"Classic"},
		"originalPrice": {"50"},
		"sellingPrice":  {"70"},
		"productType":   {"Eyeglasses"},
		"gender":        {"Men"},
		"suitableFor":   {"Oval"},
		"frameSize":     {"Medium"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "must not exceed originalPrice")
	assert.Empty(t, c.api.callsTo("getProductById"))
	assert.Empty(t, c.api.callsTo("updateProduct"))
}

func TestUpdateProductWithoutNewImagesSkipsReread(t *testing.T) {
	c := newConsole(t)
	c.login("tok")
	c.api.set("updateProduct", http.StatusOK, `{"success":true,"message":"Updated"}`)

	rec := c.post("/products/p1", url.Values{
		"name":          {"Round Classic"},
		"title":         {"Classic"},
		"originalPrice": {"70"},
		"sellingPrice":  {"50"},
		"productType":   {"Eyeglasses"},
		"gender":        {"Men"},
		"suitableFor":   {"Oval"},
		"frameSize":     {"Medium"},
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/products/p1", rec.Header().Get("Location"))
	assert.Empty(t, c.api.callsTo("getProductById"))
	assert.Len(t, c.api.callsTo("updateProduct"), 1)
}

func TestReorderTestimonialRejectsNegativeIndex(t *testing.T) {
	c := newConsole(t)
	c.login("tok")

	rec := c.post("/testimonials/t1/index", url.Values{"newIndex": {"-1"}})
	assert.Equal(t, "/testimonials", rec.Header().Get("Location"))
	assert.Empty(t, c.api.callsTo("updateTestimonialIndex"))

	c.api.set("getAllTestimonials", http.StatusOK, `{"testimonials":[{"_id":"t1","name":"Ravi","message":"Great","index":2}]}`)
	page := c.get("/testimonials").Body.String()
	assert.Contains(t, page, "Position must be a whole number")
	assert.Contains(t, page, `name="newIndex" value="2"`)
}

func TestReorderTestimonialSendsIndex(t *testing.T) {
	c := newConsole(t)
	c.login("tok")
	c.api.set("updateTestimonialIndex", http.StatusOK, `{"success":true}`)

	rec := c.post("/testimonials/t1/index", url.Values{"newIndex": {"4"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	calls := c.api.callsTo("updateTestimonialIndex")
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"id":"t1","newIndex":4}`, calls[0].body)
}

func TestReorderTestimonialUnchangedIndexMakesNoCall(t *testing.T) {
	c := newConsole(t)
	c.login("tok")
	c.api.set("getAllTestimonials", http.StatusOK, `{"testimonials":[{"_id":"t1","name":"Ravi","message":"Great","index":2}]}`)

	assert.Contains(t, c.get("/testimonials").Body.String(), `name="currentIndex" value="2"`)

	rec := c.post("/testimonials/t1/index", url.Values{"newIndex": {"2"}, "currentIndex": {"2"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/testimonials", rec.Header().Get("Location"))
	assert.Empty(t, c.api.callsTo("updateTestimonialIndex"))
}

func TestRemoveResearchDocumentNeedsConfirmation(t *testing.T) {
	c := newConsole(t)
	c.login("tok")
	c.api.set("deleteResearchDocument", http.StatusOK, `{"success":true,"message":"Document removed"}`)

	confirm := c.get("/research/r1/documents/delete?fileName=uploads%2Fa.pdf")
	assert.Equal(t, http.StatusOK, confirm.Code)
	assert.Contains(t, confirm.Body.String(), `action="/research/r1/documents/delete"`)
	assert.Contains(t, confirm.Body.String(), `name="fileName" value="uploads/a.pdf"`)
	assert.Empty(t, c.api.callsTo("deleteResearchDocument"))

	rec := c.post("/research/r1/documents/delete", url.Values{"fileName": {"uploads/a.pdf"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/research/r1", rec.Header().Get("Location"))

	calls := c.api.callsTo("deleteResearchDocument")
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"id":"r1","fileName":"uploads/a.pdf"}`, calls[0].body)
}

func TestMembershipDurationComesFromPlanType(t *testing.T) {
	c := newConsole(t)
	c.login("tok")
	c.api.set("addUpdateMembership", http.StatusOK, `{"success":true,"message":"Saved"}`)

	rec := c.post("/memberships", url.Values{
		"title":          {"Plus"},
		"planType":       {"6months"},
		"price":          {"49"},
		"durationInDays": {"999"},
		"status":         {"active"},
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	calls := c.api.callsTo("addUpdateMembership")
	require.Len(t, calls, 1)
	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(calls[0].body), &sent))
	assert.EqualValues(t, 180, sent["durationInDays"])
}

func TestToggleFAQKeepsContent(t *testing.T) {
	c := newConsole(t)
	c.login("tok")
	c.api.set("getFAQById", http.StatusOK, `{"faq":{"_id":"f1","question":"Do you ship?","answer":"<p>Yes</p>","isActive":true}}`)
	c.api.set("updateFAQ", http.StatusOK, `{"success":true}`)

	rec := c.post("/faqs/f1/active", url.Values{"active": {"false"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	calls := c.api.callsTo("updateFAQ")
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"id":"f1","question":"Do you ship?","answer":"<p>Yes</p>","isActive":false}`, calls[0].body)
}

func TestRichTextPreviewSanitizesWithoutSaving(t *testing.T) {
	c := newConsole(t)
	c.login("tok")

	rec := c.post("/faqs", url.Values{
		"question": {"Is it safe?"},
		"answer":   {`<p onclick="steal()">Yes <b>always</b></p><script>alert(1)</script>`},
		"preview":  {"1"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<strong>always</strong>")
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.NotContains(t, body, `onclick="steal()"`)
	assert.Empty(t, c.api.callsTo("addFAQ"))
}

func TestSaveFAQStoresSanitizedAnswer(t *testing.T) {
	c := newConsole(t)
	c.login("tok")
	c.api.set("addFAQ", http.StatusOK, `{"success":true}`)

	rec := c.post("/faqs", url.Values{
		"question": {"Returns?"},
		"answer":   {`<p>Within 30 days<script>x()</script></p>`},
		"isActive": {"true"},
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	calls := c.api.callsTo("addFAQ")
	require.Len(t, calls, 1)
	assert.NotContains(t, calls[0].body, "script")
	assert.Contains(t, calls[0].body, "Within 30 days")
}

func TestContactReplyIsOneTime(t *testing.T) {
	c := newConsole(t)
	c.login("tok")
	c.api.set("getAllContacts", http.StatusOK, `{"data":[{"_id":"c1","name":"Meera","email":"m@x.test","message":"Hi","replied":"Replied","reply":"Hello"}],"totalPages":1}`)

	detail := c.get("/contacts/c1").Body.String()
	assert.Contains(t, detail, "Hello")
	assert.NotContains(t, detail, "Send reply")

	rec := c.post("/contacts/c1/reply", url.Values{"reply": {"Again"}})
	assert.Equal(t, "/contacts/c1", rec.Header().Get("Location"))
	assert.Empty(t, c.api.callsTo("replyToContact"))
}

func TestSubscriberToggleKeyedByEmail(t *testing.T) {
	c := newConsole(t)
	c.login("tok")
	c.api.set("updateNewsletterStatus", http.StatusOK, `{"success":true}`)

	rec := c.post("/subscribers/status", url.Values{"email": {"a@b.test"}, "status": {"Unsubscribed"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	calls := c.api.callsTo("updateNewsletterStatus")
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"email":"a@b.test","status":"Unsubscribed"}`, calls[0].body)
}

func TestDashboardCardsFailIndependently(t *testing.T) {
	c := newConsole(t)
	c.login("tok")
	c.api.set("getDashboardCount", http.StatusOK, `{"counts":{"totalUsers":12,"totalProducts":7}}`)
	c.api.set("getGraphStats", http.StatusInternalServerError, `{"message":"stats offline"}`)
	c.api.set("getUsersCounts", http.StatusOK, `{"counts":{"total":12,"active":9}}`)

	rec := c.get("/?filter=weekly")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "stats offline")
	assert.Contains(t, body, "12")

	for _, endpoint := range []string{"getDashboardCount", "getGraphStats", "getUsersCounts"} {
		calls := c.api.callsTo(endpoint)
		require.Len(t, calls, 1, endpoint)
		assert.Equal(t, "weekly", calls[0].query.Get("filter"))
	}
}

func TestServiceTypesFilteredLocally(t *testing.T) {
	c := newConsole(t)
	c.login("tok")
	c.api.set("getAllServiceTypes", http.StatusOK, `{"data":[{"_id":"s1","name":"Eye Test"},{"_id":"s2","name":"Lens Fitting"}],"totalPages":1}`)

	body := c.get("/service-types?search=lens").Body.String()
	assert.Contains(t, body, "Lens Fitting")
	assert.NotContains(t, body, "Eye Test")
}

func TestUnknownPolicyIsNotFound(t *testing.T) {
	c := newConsole(t)
	c.login("tok")

	assert.Equal(t, http.StatusNotFound, c.get("/policies/privacy").Code)
}

func TestHealthReportsInflight(t *testing.T) {
	c := newConsole(t)

	rec := c.get("/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["audit"])
}
