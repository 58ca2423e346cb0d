package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sepaku_backend/internals/constants"
	helper "sepaku_backend/internals/helpers"
)

const testSecret = "test-secret"

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/staff",
		AuthJWT(AuthJWTOpts{Secret: testSecret, AllowCookieFallback: true}),
		OnlyRoles("staff only", constants.FinanceStaff...),
		func(c *fiber.Ctx) error {
			uid, err := helper.GetUserIDFromToken(c)
			if err != nil {
				return err
			}
			return c.SendString(uid.String())
		},
	)
	return app
}

func call(t *testing.T, app *fiber.App, token string, cookie bool) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/staff", nil)
	if token != "" {
		if cookie {
			req.Header.Set(fiber.HeaderCookie, "access_token="+token)
		} else {
			req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		}
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthJWT(t *testing.T) {
	app := newApp()
	uid := uuid.NewString()
	exp := time.Now().Add(time.Hour).Unix()

	cases := []struct {
		name   string
		token  string
		cookie bool
		want   int
	}{
		{"missing token", "", false, fiber.StatusUnauthorized},
		{"wrong secret", sign(t, "other", jwt.MapClaims{"id": uid, "role": "admin", "exp": exp}), false, fiber.StatusUnauthorized},
		{"expired", sign(t, testSecret, jwt.MapClaims{"id": uid, "role": "admin", "exp": time.Now().Add(-time.Minute).Unix()}), false, fiber.StatusUnauthorized},
		{"bad user id", sign(t, testSecret, jwt.MapClaims{"id": "nope", "role": "admin", "exp": exp}), false, fiber.StatusUnauthorized},
		{"parent forbidden", sign(t, testSecret, jwt.MapClaims{"id": uid, "role": "parent", "exp": exp}), false, fiber.StatusForbidden},
		{"no role", sign(t, testSecret, jwt.MapClaims{"id": uid, "exp": exp}), false, fiber.StatusUnauthorized},
		{"admin", sign(t, testSecret, jwt.MapClaims{"id": uid, "role": "admin", "exp": exp}), false, fiber.StatusOK},
		{"accountant via sub, mixed case", sign(t, testSecret, jwt.MapClaims{"sub": uid, "role": "Accountant", "exp": exp}), false, fiber.StatusOK},
		{"cookie fallback", sign(t, testSecret, jwt.MapClaims{"id": uid, "role": "admin", "exp": exp}), true, fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, call(t, app, tc.token, tc.cookie))
		})
	}
}

func TestAuthJWTRejectsNoneAlgorithm(t *testing.T) {
	app := newApp()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":   uuid.NewString(),
		"role": "admin",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, call(t, app, tok, false))
}

func TestAuthJWTPanicsWithoutSecret(t *testing.T) {
	assert.Panics(t, func() { AuthJWT(AuthJWTOpts{}) })
}
