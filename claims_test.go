package canteen_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	canteen "github.com/campushub/go-canteen"
)

func TestIdentityFromTokenMapsClaims(t *testing.T) {
	token := signedTestToken(t, jwt.MapClaims{
		"sub":   "student-7",
		"uid":   "u-7",
		"name":  "Ravi Kumar",
		"email": "ravi@campus.edu",
	})

	identity, err := canteen.IdentityFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-7", identity.UserID)
	assert.Equal(t, "Ravi Kumar", identity.Name)
	assert.Equal(t, "ravi@campus.edu", identity.Email)
}

func TestIdentityFromTokenFallsBackToSubject(t *testing.T) {
	token := signedTestToken(t, jwt.MapClaims{
		"sub":  "student-7",
		"name": "Ravi Kumar",
	})

	identity, err := canteen.IdentityFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "student-7", identity.UserID)
}

func TestIdentityFromTokenRejectsGarbage(t *testing.T) {
	_, err := canteen.IdentityFromToken("not-a-jwt")
	require.Error(t, err)
	assert.ErrorIs(t, err, canteen.ErrUnableToParseToken)
}

func TestSessionIdentityValidate(t *testing.T) {
	valid := canteen.SessionIdentity{UserID: "u-1", Name: "Asha", Email: "asha@campus.edu"}
	assert.NoError(t, valid.Validate())

	noEmail := canteen.SessionIdentity{UserID: "u-1", Name: "Asha"}
	assert.NoError(t, noEmail.Validate())

	assert.Error(t, canteen.SessionIdentity{Name: "Asha"}.Validate())
	assert.Error(t, canteen.SessionIdentity{UserID: "u-1"}.Validate())
	assert.Error(t, canteen.SessionIdentity{UserID: "u-1", Name: "Asha", Email: "nope"}.Validate())
}

func TestSessionIdentityStringOmitsNothingSensitive(t *testing.T) {
	identity := canteen.SessionIdentity{UserID: "u-1", Name: "Asha", Email: "asha@campus.edu"}
	s := identity.String()
	assert.Contains(t, s, "u-1")
	assert.Contains(t, s, "Asha")
}
