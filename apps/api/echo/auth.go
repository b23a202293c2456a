package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/auth"
	"github.com/trezcool/masomo-dashboard/core/route"
)

const (
	jwtContextKey = "userToken"
	jwtAudience   = "Dashboard"
)

func newJWTConfig(secret string) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(secret),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    jwtContextKey,
		Claims:        new(Claims),
	}
}

// Claims represents the authorization claims transmitted via a JWT.
// Nothing is stored server side: the token carries the whole profile.
type Claims struct {
	jwt.StandardClaims
	Email string    `json:"email,omitempty"`
	Name  string    `json:"name,omitempty"`
	Role  auth.Role `json:"role,omitempty"`
}

func NewClaims(p auth.Profile, conf *core.Config) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   p.Email,
			Audience:  jwtAudience,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email: p.Email,
		Name:  p.Name,
		Role:  p.Role,
	}
}

func (c Claims) Profile() auth.Profile {
	return auth.Profile{Email: c.Email, Name: c.Name, Role: c.Role}
}

func (c Claims) IsAdmin() bool { return c.Role == auth.RoleAdmin }

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(claims *Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), claims)

	ss, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(jwtContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

type (
	LoginResponse struct {
		Token    string       `json:"token"`
		Profile  auth.Profile `json:"profile"`
		Redirect string       `json:"redirect"`
	}

	meResponse struct {
		Profile     auth.Profile `json:"profile"`
		WindowTitle string       `json:"window_title"`
	}
)

type authApi struct {
	deps *Deps
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *Deps) {
	api := authApi{deps: deps}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.GET("/me", api.me, jwt)
}

// login accepts any non-empty credentials. The optional ?redirect= continuation
// is echoed back so that the client can resume where it was sent to sign in.
func (api *authApi) login(ctx echo.Context) error {
	var creds auth.Credentials
	if err := ctx.Bind(&creds); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}

	profile, err := api.deps.Auth.Login(ctx.Request().Context(), creds)
	if err != nil {
		return errors.Wrap(err, "logging in")
	}
	token, err := GenerateToken(NewClaims(profile, api.deps.Conf), api.deps.Conf.SecretKey)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	api.deps.Logger.Info("signed in", profile)
	return ctx.JSON(http.StatusOK, LoginResponse{
		Token:    token,
		Profile:  profile,
		Redirect: route.RedirectTarget(ctx.Request().RequestURI),
	})
}

func (api *authApi) me(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	return ctx.JSON(http.StatusOK, meResponse{
		Profile:     claims.Profile(),
		WindowTitle: route.WindowTitle("/", api.deps.Conf.AppName),
	})
}
