package middleware

// identity.go holds the user-identifier helper shared by the rate limiter
// and the response cache.  It reads the user_id that JWTAuth stored in the
// Echo context; unauthenticated requests identify as "anon".

import (
    "fmt"

    "github.com/labstack/echo/v4"
)

// currentUserID returns a stable string identifier for the requester, used
// in rate-limit bucket keys.  Values stored by JWTAuth may be numeric
// (JWT numbers decode as float64) or strings.
func currentUserID(c echo.Context) string {
    v := c.Get("user_id")
    if v == nil {
        return "anon"
    }
    switch t := v.(type) {
    case string:
        if t != "" {
            return t
        }
    case float64:
        return fmt.Sprintf("%.0f", t)
    case uint64:
        return fmt.Sprintf("%d", t)
    case int64:
        return fmt.Sprintf("%d", t)
    }
    return "anon"
}
