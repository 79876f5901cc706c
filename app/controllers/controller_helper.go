package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/EberechiLabs/FestHive/internal/pkg/usercontext"
)

// Session keys shared with the user context middleware
const (
	AUTH_KEY       string = usercontext.AuthKey
	USER_ID        string = usercontext.KeyUserID
	USER_NAME      string = usercontext.KeyUsername
	USER_IS_ADMIN  string = usercontext.KeyIsAdmin
	FROM_PROTECTED string = usercontext.KeyFromProtected
)

const defaultPageSize = 25

func isLoggedIn(c *fiber.Ctx) bool {
	var fromProtected bool
	if protectedValue := c.Locals(FROM_PROTECTED); protectedValue != nil {
		if b, ok := protectedValue.(bool); ok {
			fromProtected = b
		}
	}

	return fromProtected
}

// ExtractUsername gets the username from Locals (set by middleware)
func ExtractUsername(c *fiber.Ctx) string {
	if userNameValue := c.Locals(USER_NAME); userNameValue != nil {
		if userName, ok := userNameValue.(string); ok {
			return userName
		}
	}

	return ""
}

// paramUint parses a numeric route parameter, 0 when absent or invalid
func paramUint(c *fiber.Ctx, name string) uint {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

// pageOffset derives offset/limit from the ?page query parameter
func pageOffset(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return (page - 1) * defaultPageSize, defaultPageSize
}

// formTrimmed returns a trimmed form value
func formTrimmed(c *fiber.Ctx, key string) string {
	return strings.TrimSpace(c.FormValue(key))
}
