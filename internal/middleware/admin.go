package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminRequired allows the request when any of these hold:
// 1. X-Admin-Token matches the configured token
// 2. the token subject is in ADMIN_USER_IDS
// 3. the user row has role "admin"
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminUserIDs := parseCSV(cfg.AdminUserIDs)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
			return c.Next()
		}

		userID, err := GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if contains(adminUserIDs, userID.String()) {
			return c.Next()
		}

		if db != nil {
			var user models.User
			if err := db.Select("role").First(&user, "id = ?", userID).Error; err == nil && user.Role == models.RoleAdmin {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if strings.EqualFold(item, val) {
			return true
		}
	}
	return false
}
