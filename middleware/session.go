package middleware

import (
	"errors"
	"time"

	"github.com/ariebrainware/doctor-portal/model"
	"github.com/ariebrainware/doctor-portal/util"
	"github.com/gin-gonic/gin"
)

// SessionHeader carries the session token on protected requests.
const SessionHeader = "session-token"

// SessionQueryParam is accepted when the client cannot set headers, e.g. EventSource.
const SessionQueryParam = "session_token"

var (
	errMissingToken   = errors.New("missing session token")
	errInvalidSession = errors.New("invalid or expired session")
)

// ValidateSessionToken gates protected routes. The token must be a valid
// signed session token with a live session row. Redis is consulted first and
// the DB is the source of truth on a miss.
func ValidateSessionToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(SessionHeader)
		if token == "" {
			token = c.Query(SessionQueryParam)
		}
		if token == "" {
			util.LogUnauthorizedAccess(c.ClientIP(), c.Request.URL.Path, errMissingToken.Error())
			util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Please login first", Err: errMissingToken})
			c.Abort()
			return
		}

		db := GetDB(c)
		if db == nil {
			util.CallServerError(c, util.APIErrorParams{Msg: "Database connection not available", Err: errors.New("db missing from context")})
			c.Abort()
			return
		}

		claims, err := util.ParseSessionToken(token)
		if err != nil {
			util.LogUnauthorizedAccess(c.ClientIP(), c.Request.URL.Path, "bad token")
			util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Session is not valid", Err: errInvalidSession})
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		if doctorID, ok := util.LookupCachedSession(ctx, token); ok && doctorID == claims.DoctorID {
			setSession(c, doctorID, token)
			c.Next()
			return
		}

		var session model.Session
		err = db.Where("session_token = ? AND expires_at > ?", token, time.Now()).First(&session).Error
		if err != nil || session.DoctorID != claims.DoctorID {
			util.LogUnauthorizedAccess(c.ClientIP(), c.Request.URL.Path, "no live session")
			util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Session is not valid", Err: errInvalidSession})
			c.Abort()
			return
		}

		if err := util.CacheSession(ctx, token, session.DoctorID, time.Until(session.ExpiresAt)); err != nil {
			util.Logger.Warn().Err(err).Msg("failed to cache session")
		}
		setSession(c, session.DoctorID, token)
		c.Next()
	}
}

func setSession(c *gin.Context, doctorID uint, token string) {
	c.Set(DoctorIDKey, doctorID)
	c.Set(SessionTokenKey, token)
}

// GetDoctorID returns the authenticated doctor's id.
func GetDoctorID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(DoctorIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// GetSessionToken returns the token that authenticated the request.
func GetSessionToken(c *gin.Context) string {
	return c.GetString(SessionTokenKey)
}
