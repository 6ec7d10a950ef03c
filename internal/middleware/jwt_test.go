package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soko_market/internal/authz"
	"soko_market/internal/models"
)

const testSecret = "test-secret"

func newGateRouter(action authz.Action) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/probe", RequireAuth(testSecret), RequireAction(action), func(c *gin.Context) {
		id, _ := CallerIdentity(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id.UserID, "role": id.Role})
	})
	return r
}

func doProbe(t *testing.T, r *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, "/probe", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	r := newGateRouter(authz.ActionOrderRead)
	w := doProbe(t, r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsGarbageToken(t *testing.T) {
	r := newGateRouter(authz.ActionOrderRead)
	w := doProbe(t, r, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("other-secret", 1, models.RoleAdmin)
	require.NoError(t, err)

	r := newGateRouter(authz.ActionOrderRead)
	w := doProbe(t, r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsNonHMACToken(t *testing.T) {
	// A token signed with another algorithm never reaches key comparison.
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"user_id": 1,
		"role":    string(models.RoleAdmin),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)

	r := newGateRouter(authz.ActionOrderRead)
	w := doProbe(t, r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenCarriesIdentityThroughGate(t *testing.T) {
	token, err := GenerateToken(testSecret, 7, models.RoleAdmin)
	require.NoError(t, err)

	r := newGateRouter(authz.ActionOrderRead)
	w := doProbe(t, r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestGateDeniesRoleOffAllowList(t *testing.T) {
	// A rider can never delete an order, whatever the order names.
	token, err := GenerateToken(testSecret, 9, models.RoleRider)
	require.NoError(t, err)

	r := newGateRouter(authz.ActionOrderDelete)
	w := doProbe(t, r, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGateDeniesUndeclaredAction(t *testing.T) {
	token, err := GenerateToken(testSecret, 9, models.RoleAdmin)
	require.NoError(t, err)

	r := newGateRouter(authz.Action("report.export"))
	w := doProbe(t, r, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
