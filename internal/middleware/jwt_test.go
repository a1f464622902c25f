package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/writerpro-api/internal/middleware"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func newProtectedApp(seen *interface{}) *fiber.App {
	app := fiber.New()
	app.Get("/", middleware.JWTProtected(testSecret), func(c *fiber.Ctx) error {
		*seen = c.Locals("user_id")
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestJWTProtectedNormalisesUserID(t *testing.T) {
	cases := []struct {
		name   string
		claims jwt.MapClaims
		want   uint
	}{
		{name: "numeric sub", claims: jwt.MapClaims{"sub": float64(42)}, want: 42},
		{name: "string sub", claims: jwt.MapClaims{"sub": "17"}, want: 17},
		{name: "user_id claim", claims: jwt.MapClaims{"user_id": float64(5)}, want: 5},
		{name: "id claim after bad sub", claims: jwt.MapClaims{"sub": "alice", "id": "9"}, want: 9},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen interface{}
			app := newProtectedApp(&seen)

			tc.claims["exp"] = time.Now().Add(time.Hour).Unix()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, []byte(testSecret), tc.claims))

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
			require.Equal(t, tc.want, seen)
		})
	}
}

func TestJWTProtectedRejects(t *testing.T) {
	valid := jwt.MapClaims{"sub": "3", "exp": time.Now().Add(time.Hour).Unix()}
	cases := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "empty token", header: "Bearer   "},
		{name: "bad signature", header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), valid)},
		{name: "expired", header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "3", "exp": time.Now().Add(-time.Hour).Unix()})},
		{name: "no subject", header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})},
		{name: "zero subject", header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": float64(0)})},
		{name: "none algorithm", header: "Bearer " + signToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen interface{}
			app := newProtectedApp(&seen)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
			require.Nil(t, seen)
		})
	}
}
