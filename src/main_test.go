package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"tourbook/src/db"
	"tourbook/src/db/dbtest"
	"tourbook/src/models"
	"tourbook/src/payments"
	"tourbook/src/types"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

const (
	jwtSecret     = "secret"
	webhookSecret = "whsec_test"
)

type stubGateway struct {
	refunds int
}

func (g *stubGateway) CreatePaymentIntent(ctx context.Context, req payments.IntentRequest) (*payments.GatewayPayment, error) {
	return &payments.GatewayPayment{ID: "pi_" + req.BookingID[:8], Amount: req.Amount, Currency: req.Currency, ClientSecret: "cs_test"}, nil
}

func (g *stubGateway) RetrievePayment(ctx context.Context, id string) (*payments.GatewayPayment, error) {
	return &payments.GatewayPayment{ID: id, ClientSecret: "cs_test"}, nil
}

func (g *stubGateway) CreateRefund(ctx context.Context, id string, amount *int64) (*payments.GatewayRefund, error) {
	g.refunds++
	refunded := int64(59997)
	if amount != nil {
		refunded = *amount
	}
	return &payments.GatewayRefund{ID: "re_test", Status: "succeeded", Amount: refunded}, nil
}

func (g *stubGateway) ListRecentPayments(ctx context.Context, since time.Time, limit int) ([]payments.GatewayPayment, error) {
	return nil, nil
}

type TestSuite struct {
	suite.Suite
	DB         *gorm.DB
	Gateway    *stubGateway
	User       models.User
	Admin      models.User
	Tour       models.Tour
	Token      string
	AdminToken string
}

func generateJWT(user models.User) (string, error) {
	claims := types.Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
}

func (s *TestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	registerValidators()
}

func (s *TestSuite) SetupTest() {
	s.T().Setenv("JWT_SECRET", jwtSecret)
	s.T().Setenv("STRIPE_WEBHOOK_SECRET", webhookSecret)
	s.T().Setenv("MAINTENANCE_MODE", "")
	s.T().Setenv("REDIS_HOST", "")

	s.DB = dbtest.New(s.T())
	db.NewDB(s.DB)
	s.Gateway = &stubGateway{}
	newGateway = func() payments.Gateway { return s.Gateway }

	s.User = models.User{Name: "Test User", Email: "someone@example.com"}
	s.Admin = models.User{Name: "Admin", Email: "admin@example.com", Role: types.ROLE_ADMIN}
	require.NoError(s.T(), s.DB.Create(&s.User).Error)
	require.NoError(s.T(), s.DB.Create(&s.Admin).Error)

	s.Tour = models.Tour{
		Name:           "Patagonia Trek",
		Location:       "El Chalten",
		Duration:       5,
		PricePerPerson: decimal.RequireFromString("199.99"),
		MaxGroupSize:   8,
		Featured:       true,
	}
	require.NoError(s.T(), s.DB.Create(&s.Tour).Error)

	var err error
	s.Token, err = generateJWT(s.User)
	require.NoError(s.T(), err)
	s.AdminToken, err = generateJWT(s.Admin)
	require.NoError(s.T(), err)
}

func (s *TestSuite) router() *gin.Engine {
	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	registerRoutes(router)
	return router
}

func (s *TestSuite) do(router *gin.Engine, method, url, token string, body any) (*httptest.ResponseRecorder, string) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = strings.NewReader(string(b))
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(s.T(), err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w, w.Body.String()
}

func (s *TestSuite) bookingBody(people int) map[string]any {
	return map[string]any{
		"tour_id":          s.Tour.ID,
		"number_of_people": people,
		"start_date":       time.Now().Add(30 * 24 * time.Hour).UTC().Format(time.RFC3339),
		"traveler_info": map[string]any{
			"first_name": "Ada",
			"last_name":  "Lovelace",
			"email":      "ada@example.com",
		},
	}
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestMaintenanceMode() {
	s.T().Setenv("MAINTENANCE_MODE", "true")

	router := s.router()
	w, body := s.do(router, "GET", "/api/v1/tours", "", nil)

	assert.Equal(s.T(), 503, w.Code)
	assert.Equal(s.T(), "server is under maintenance", gjson.Get(body, "error").String())
}

func (s *TestSuite) TestUnauthenticated() {
	router := s.router()
	w, _ := s.do(router, "GET", "/api/v1/bookings", "", nil)
	assert.Equal(s.T(), 401, w.Code)

	w, _ = s.do(router, "GET", "/api/v1/admin/coupons", s.Token, nil)
	assert.Equal(s.T(), 403, w.Code)
}

func (s *TestSuite) TestTours() {
	router := s.router()
	inactive := models.Tour{Name: "Closed Route", PricePerPerson: decimal.NewFromInt(50), Status: types.TOUR_INACTIVE}
	require.NoError(s.T(), s.DB.Create(&inactive).Error)

	w, body := s.do(router, "GET", "/api/v1/tours?search=patagonia&min_price=100", "", nil)
	assert.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), int64(1), gjson.Get(body, "count").Int())
	assert.Equal(s.T(), s.Tour.Slug, gjson.Get(body, "data.0.slug").String())

	w, body = s.do(router, "GET", "/api/v1/tours", "", nil)
	assert.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), int64(1), gjson.Get(body, "count").Int())

	w, body = s.do(router, "GET", "/api/v1/admin/tours", s.AdminToken, nil)
	assert.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), int64(2), gjson.Get(body, "count").Int())

	w, _ = s.do(router, "GET", "/api/v1/tours/"+s.Tour.Slug, "", nil)
	assert.Equal(s.T(), 200, w.Code)
	w, _ = s.do(router, "GET", "/api/v1/tours/"+inactive.ID.String(), "", nil)
	assert.Equal(s.T(), 404, w.Code)
}

func (s *TestSuite) TestBookingFlow() {
	router := s.router()

	s.Run("Should create a booking with the computed total", func() {
		w, body := s.do(router, "POST", "/api/v1/bookings", s.Token, s.bookingBody(3))
		require.Equal(s.T(), 201, w.Code, body)
		assert.Equal(s.T(), "599.97", gjson.Get(body, "data.total_price").String())
		assert.Equal(s.T(), "Pending", gjson.Get(body, "data.status").String())
		assert.Equal(s.T(), "Pending", gjson.Get(body, "data.payment_status").String())
	})

	s.Run("Should reject an incomplete traveler", func() {
		req := s.bookingBody(2)
		req["traveler_info"] = map[string]any{"first_name": "Ada"}
		w, body := s.do(router, "POST", "/api/v1/bookings", s.Token, req)
		assert.Equal(s.T(), 400, w.Code)
		assert.NotEmpty(s.T(), gjson.Get(body, "error").String())
	})

	s.Run("Should reject a past start date", func() {
		req := s.bookingBody(2)
		req["start_date"] = time.Now().Add(-24 * time.Hour).UTC().Format(time.RFC3339)
		w, _ := s.do(router, "POST", "/api/v1/bookings", s.Token, req)
		assert.Equal(s.T(), 400, w.Code)
	})

	var booking models.Booking
	require.NoError(s.T(), s.DB.First(&booking).Error)
	id := booking.ID.String()

	s.Run("Should forbid status changes by travelers", func() {
		w, _ := s.do(router, "PATCH", "/api/v1/bookings", s.Token, map[string]any{"booking_id": id, "status": "Confirmed"})
		assert.Equal(s.T(), 403, w.Code)
		w, _ = s.do(router, "PATCH", "/api/v1/admin/bookings/"+id+"/status", s.Token, map[string]any{"status": "Confirmed"})
		assert.Equal(s.T(), 403, w.Code)
	})

	s.Run("Should confirm as admin", func() {
		w, body := s.do(router, "PATCH", "/api/v1/admin/bookings/"+id+"/status", s.AdminToken, map[string]any{"status": "Confirmed"})
		require.Equal(s.T(), 200, w.Code, body)
		assert.Equal(s.T(), "Confirmed", gjson.Get(body, "data.status").String())

		w, body = s.do(router, "GET", "/api/v1/admin/logs", s.AdminToken, nil)
		require.Equal(s.T(), 200, w.Code)
		assert.Equal(s.T(), "Updated booking status to Confirmed", gjson.Get(body, "data.0.action").String())
	})

	s.Run("Should list only the caller's bookings", func() {
		w, body := s.do(router, "GET", "/api/v1/bookings", s.Token, nil)
		assert.Equal(s.T(), 200, w.Code)
		assert.Equal(s.T(), int64(1), gjson.Get(body, "count").Int())

		other := models.User{Email: "other@example.com"}
		require.NoError(s.T(), s.DB.Create(&other).Error)
		token, err := generateJWT(other)
		require.NoError(s.T(), err)
		w, body = s.do(router, "GET", "/api/v1/bookings", token, nil)
		assert.Equal(s.T(), 200, w.Code)
		assert.Equal(s.T(), int64(0), gjson.Get(body, "count").Int())
		w, _ = s.do(router, "PATCH", "/api/v1/bookings/"+id+"/cancel", token, nil)
		assert.Equal(s.T(), 403, w.Code)
	})

	s.Run("Should cancel as owner", func() {
		w, body := s.do(router, "PATCH", "/api/v1/bookings/"+id+"/cancel", s.Token, nil)
		require.Equal(s.T(), 200, w.Code, body)
		assert.Equal(s.T(), "Canceled", gjson.Get(body, "data.status").String())

		w, _ = s.do(router, "PATCH", "/api/v1/bookings/"+id+"/cancel", s.Token, nil)
		assert.Equal(s.T(), 400, w.Code)
	})
}

func (s *TestSuite) TestCoupons() {
	router := s.router()

	w, body := s.do(router, "POST", "/api/v1/admin/coupons", s.AdminToken, map[string]any{
		"code":           "save100",
		"discount_type":  "fixed",
		"discount_value": 100,
		"minimum_amount": 500,
		"valid_from":     time.Now().Add(-time.Hour).UTC().Format(time.RFC3339),
	})
	require.Equal(s.T(), 201, w.Code, body)
	assert.Equal(s.T(), "SAVE100", gjson.Get(body, "data.code").String())
	couponID := gjson.Get(body, "data.id").String()

	w, _ = s.do(router, "POST", "/api/v1/admin/coupons", s.AdminToken, map[string]any{
		"code":           "Save100",
		"discount_type":  "fixed",
		"discount_value": 5,
	})
	assert.Equal(s.T(), 400, w.Code)

	w, body = s.do(router, "POST", "/api/v1/checkout/apply-coupon", s.Token, map[string]any{"coupon_code": "SAVE100", "subtotal": 599.97})
	require.Equal(s.T(), 200, w.Code, body)
	assert.Equal(s.T(), 100.0, gjson.Get(body, "discount").Float())
	assert.Equal(s.T(), "SAVE100", gjson.Get(body, "coupon_code").String())
	assert.Equal(s.T(), "fixed", gjson.Get(body, "type").String())

	w, body = s.do(router, "POST", "/api/v1/checkout/apply-coupon", s.Token, map[string]any{"coupon_code": "SAVE100", "subtotal": 499.99})
	assert.Equal(s.T(), 400, w.Code)
	assert.Contains(s.T(), gjson.Get(body, "error").String(), "500.00")

	w, body = s.do(router, "POST", "/api/v1/checkout/apply-coupon", s.Token, map[string]any{"coupon_code": "NOPE", "subtotal": 100})
	assert.Equal(s.T(), 400, w.Code)
	assert.Equal(s.T(), "invalid coupon code", gjson.Get(body, "error").String())

	w, _ = s.do(router, "PATCH", "/api/v1/admin/coupons/"+couponID+"/toggle", s.AdminToken, map[string]any{"is_active": false})
	assert.Equal(s.T(), 200, w.Code)
	w, _ = s.do(router, "POST", "/api/v1/checkout/apply-coupon", s.Token, map[string]any{"coupon_code": "SAVE100", "subtotal": 599.97})
	assert.Equal(s.T(), 400, w.Code)
}

func (s *TestSuite) paidBooking() (*models.Booking, *models.Payment) {
	start := time.Now().Add(30 * 24 * time.Hour)
	b := models.Booking{
		UserID:         s.User.ID,
		TourID:         s.Tour.ID,
		NumberOfPeople: 3,
		TotalPrice:     decimal.RequireFromString("599.97"),
		BookingDate:    time.Now(),
		StartDate:      &start,
		Status:         types.BOOKING_CONFIRMED,
		PaymentStatus:  types.PAYMENT_PENDING,
	}
	require.NoError(s.T(), s.DB.Create(&b).Error)
	p := models.Payment{BookingID: &b.ID, PaymentIntentID: "pi_webhook", Amount: 59997, Currency: "usd", Status: types.PAYMENT_PENDING}
	require.NoError(s.T(), s.DB.Create(&p).Error)
	return &b, &p
}

func (s *TestSuite) signedEvent(id, eventType, intentID, status string) (string, string) {
	payload := fmt.Sprintf(`{"id":%q,"object":"event","type":%q,"api_version":%q,"data":{"object":{"id":%q,"object":"payment_intent","status":%q}}}`,
		id, eventType, stripe.APIVersion, intentID, status)
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: []byte(payload), Secret: webhookSecret})
	return payload, signed.Header
}

func (s *TestSuite) postEvent(router *gin.Engine, id, eventType, intentID, status string) {
	payload, header := s.signedEvent(id, eventType, intentID, status)
	req, _ := http.NewRequest("POST", "/api/v1/webhook/stripe", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", header)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(s.T(), 200, w.Code, w.Body.String())
}

func TestWebhookOutcome(t *testing.T) {
	status, ok := webhookOutcome("payment_intent.succeeded", &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusSucceeded})
	assert.True(t, ok)
	assert.Equal(t, types.PAYMENT_PAID, status)

	status, ok = webhookOutcome("payment_intent.canceled", &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusCanceled})
	assert.True(t, ok)
	assert.Equal(t, types.PAYMENT_FAILED, status)

	_, ok = webhookOutcome("payment_intent.payment_failed", &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusRequiresPaymentMethod})
	assert.False(t, ok)

	_, ok = webhookOutcome("payment_intent.created", &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusSucceeded})
	assert.False(t, ok)
}

func (s *TestSuite) TestDeclinedCardCanStillBePaid() {
	router := s.router()
	b, p := s.paidBooking()

	s.postEvent(router, "evt_declined", "payment_intent.payment_failed", p.PaymentIntentID, "requires_payment_method")
	var booking models.Booking
	require.NoError(s.T(), s.DB.First(&booking, "id = ?", b.ID).Error)
	assert.Equal(s.T(), types.PAYMENT_PENDING, booking.PaymentStatus)

	s.postEvent(router, "evt_retried", "payment_intent.succeeded", p.PaymentIntentID, "succeeded")
	require.NoError(s.T(), s.DB.First(&booking, "id = ?", b.ID).Error)
	assert.Equal(s.T(), types.PAYMENT_PAID, booking.PaymentStatus)
	var payment models.Payment
	require.NoError(s.T(), s.DB.First(&payment, "id = ?", p.ID).Error)
	assert.Equal(s.T(), types.PAYMENT_PAID, payment.Status)
}

func (s *TestSuite) TestUnknownFieldsRejected() {
	router := s.router()
	req := s.bookingBody(2)
	req["discount"] = "100"

	w, body := s.do(router, "POST", "/api/v1/bookings", s.Token, req)
	assert.Equal(s.T(), 400, w.Code)
	assert.Contains(s.T(), gjson.Get(body, "error").String(), "unknown field")

	var count int64
	require.NoError(s.T(), s.DB.Model(&models.Booking{}).Count(&count).Error)
	assert.Zero(s.T(), count)
}

func (s *TestSuite) TestOwnerCannotMarkBookingPaid() {
	router := s.router()
	b, p := s.paidBooking()
	require.NoError(s.T(), s.DB.Model(b).Update("payment_reference", p.PaymentIntentID).Error)

	w, _ := s.do(router, "PATCH", "/api/v1/bookings", s.Token, map[string]any{"booking_id": b.ID, "payment_status": "Paid"})
	assert.Equal(s.T(), 403, w.Code)

	w, body := s.do(router, "PATCH", "/api/v1/bookings", s.AdminToken, map[string]any{"booking_id": b.ID, "payment_status": "Paid"})
	require.Equal(s.T(), 200, w.Code, body)
	var payment models.Payment
	require.NoError(s.T(), s.DB.First(&payment, "id = ?", p.ID).Error)
	assert.Equal(s.T(), types.PAYMENT_PAID, payment.Status)
}

func (s *TestSuite) TestWebhookAndRefund() {
	router := s.router()
	b, p := s.paidBooking()

	s.Run("Should reject a bad signature", func() {
		req, _ := http.NewRequest("POST", "/api/v1/webhook/stripe", strings.NewReader("{}"))
		req.Header.Set("Stripe-Signature", "t=1,v1=bad")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should mark the payment paid once", func() {
		for i := 0; i < 2; i++ {
			s.postEvent(router, fmt.Sprintf("evt_%d", i), "payment_intent.succeeded", p.PaymentIntentID, "succeeded")
		}
		var payment models.Payment
		require.NoError(s.T(), s.DB.First(&payment, "id = ?", p.ID).Error)
		assert.Equal(s.T(), types.PAYMENT_PAID, payment.Status)
		var booking models.Booking
		require.NoError(s.T(), s.DB.First(&booking, "id = ?", b.ID).Error)
		assert.Equal(s.T(), types.PAYMENT_PAID, booking.PaymentStatus)
		assert.NotNil(s.T(), booking.PaymentDate)
	})

	s.Run("Should refund in full as admin", func() {
		url := "/api/v1/admin/payments/" + p.ID.String() + "/refund"
		w, _ := s.do(router, "POST", url, s.Token, nil)
		assert.Equal(s.T(), 403, w.Code)

		w, body := s.do(router, "POST", url, s.AdminToken, nil)
		require.Equal(s.T(), 200, w.Code, body)
		assert.Equal(s.T(), int64(59997), gjson.Get(body, "refund.amount").Int())

		var booking models.Booking
		require.NoError(s.T(), s.DB.First(&booking, "id = ?", b.ID).Error)
		assert.Equal(s.T(), types.BOOKING_CANCELED, booking.Status)
		assert.Equal(s.T(), types.PAYMENT_REFUNDED, booking.PaymentStatus)

		w, _ = s.do(router, "POST", url, s.AdminToken, nil)
		assert.Equal(s.T(), 400, w.Code)
		assert.Equal(s.T(), 1, s.Gateway.refunds)
	})

	s.Run("Should list payments", func() {
		w, body := s.do(router, "GET", "/api/v1/admin/payments?status=Refunded", s.AdminToken, nil)
		require.Equal(s.T(), 200, w.Code)
		assert.Equal(s.T(), int64(1), gjson.Get(body, "count").Int())
	})

	s.Run("Should notify admins", func() {
		w, body := s.do(router, "GET", "/api/v1/admin/notifications?unread=true", s.AdminToken, nil)
		require.Equal(s.T(), 200, w.Code)
		assert.Positive(s.T(), gjson.Get(body, "count").Int())

		id := gjson.Get(body, "data.0.id").String()
		w, _ = s.do(router, "PATCH", "/api/v1/admin/notifications/"+id+"/read", s.AdminToken, nil)
		assert.Equal(s.T(), 204, w.Code)
		w, _ = s.do(router, "PATCH", "/api/v1/admin/notifications/"+uuid.NewString()+"/read", s.AdminToken, nil)
		assert.Equal(s.T(), 404, w.Code)
	})
}

func (s *TestSuite) TestUserRole() {
	router := s.router()
	url := "/api/v1/admin/users/" + s.User.ID.String() + "/role"

	w, _ := s.do(router, "PATCH", url, s.AdminToken, map[string]any{"role": "Owner"})
	assert.Equal(s.T(), 400, w.Code)

	w, body := s.do(router, "PATCH", url, s.AdminToken, map[string]any{"role": "Admin"})
	require.Equal(s.T(), 200, w.Code, body)
	assert.Equal(s.T(), "Admin", gjson.Get(body, "data.role").String())

	var logs []models.AdminLog
	require.NoError(s.T(), s.DB.Where("affected_entity = ?", "User").Find(&logs).Error)
	assert.Len(s.T(), logs, 1)
}

func (s *TestSuite) TestReviews() {
	router := s.router()
	body := map[string]any{"tour_id": s.Tour.ID, "rating": 6, "comment": "Windy but worth it"}

	w, resp := s.do(router, "POST", "/api/v1/reviews", s.Token, body)
	assert.Equal(s.T(), 400, w.Code)
	assert.Equal(s.T(), "Rating must be between 1 and 5", gjson.Get(resp, "error").String())

	body["rating"] = 5
	w, resp = s.do(router, "POST", "/api/v1/reviews", s.Token, body)
	require.Equal(s.T(), 201, w.Code)
	reviewID := gjson.Get(resp, "data.id").String()
	assert.Equal(s.T(), "pending", gjson.Get(resp, "data.status").String())

	w, resp = s.do(router, "POST", "/api/v1/reviews", s.Token, body)
	assert.Equal(s.T(), 400, w.Code)
	assert.Equal(s.T(), "You have already reviewed this tour", gjson.Get(resp, "error").String())

	w, resp = s.do(router, "GET", "/api/v1/reviews?tour_id="+s.Tour.ID.String(), "", nil)
	assert.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), int64(1), gjson.Get(resp, "count").Int())
	assert.Equal(s.T(), int64(5), gjson.Get(resp, "data.0.rating").Int())

	w, _ = s.do(router, "PATCH", "/api/v1/admin/reviews/"+reviewID+"/status", s.Token, map[string]any{"status": "approved"})
	assert.Equal(s.T(), 403, w.Code)
	w, resp = s.do(router, "PATCH", "/api/v1/admin/reviews/"+reviewID+"/status", s.AdminToken, map[string]any{"status": "approved"})
	assert.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), "approved", gjson.Get(resp, "data.status").String())

	w, _ = s.do(router, "DELETE", "/api/v1/admin/reviews/"+reviewID, s.AdminToken, nil)
	assert.Equal(s.T(), 200, w.Code)
	w, _ = s.do(router, "DELETE", "/api/v1/admin/reviews/"+reviewID, s.AdminToken, nil)
	assert.Equal(s.T(), 404, w.Code)
}

func (s *TestSuite) TestWishlist() {
	router := s.router()
	body := map[string]any{"tour_id": s.Tour.ID}

	w, _ := s.do(router, "POST", "/api/v1/wishlist", "", body)
	assert.Equal(s.T(), 401, w.Code)

	w, resp := s.do(router, "POST", "/api/v1/wishlist", s.Token, body)
	assert.Equal(s.T(), 201, w.Code)
	assert.Equal(s.T(), s.Tour.ID.String(), gjson.Get(resp, "data.tour_id").String())

	w, resp = s.do(router, "POST", "/api/v1/wishlist", s.Token, body)
	assert.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), "Tour already in wishlist", gjson.Get(resp, "message").String())

	w, resp = s.do(router, "GET", "/api/v1/wishlist", s.Token, nil)
	assert.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), int64(1), gjson.Get(resp, "count").Int())
	assert.Equal(s.T(), s.Tour.Name, gjson.Get(resp, "data.0.tour.name").String())

	w, resp = s.do(router, "DELETE", "/api/v1/wishlist/"+s.Tour.ID.String(), s.Token, nil)
	assert.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), "Removed from wishlist", gjson.Get(resp, "message").String())
	w, _ = s.do(router, "DELETE", "/api/v1/wishlist/"+s.Tour.ID.String(), s.Token, nil)
	assert.Equal(s.T(), 404, w.Code)
}

func TestRunner(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
