package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
	"github.com/sujit-baniya/flash"

	"github.com/EberechiLabs/FestHive/app/models"
	"github.com/EberechiLabs/FestHive/app/repository"
	"github.com/EberechiLabs/FestHive/internal/pkg/session"
)

// AuthController handles staff sign-in for the back office. There is no
// public registration; accounts are provisioned by an admin.
type AuthController struct {
	repos *repository.Repositories
}

// NewAuthController creates the auth controller
func NewAuthController(repos *repository.Repositories) *AuthController {
	return &AuthController{repos: repos}
}

// HandleLogin renders the login form and processes submissions
func (ac *AuthController) HandleLogin(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		fm := fiber.Map{
			"type": "error",
		}

		// notice: in production you should not inform the user
		// with detailed messages about login failures
		user, err := ac.repos.User.GetByEmail(formTrimmed(c, "email"))
		if err != nil {
			fm["message"] = "There is a problem with the login process"

			return flash.WithError(c, fm).Redirect("/login")
		}

		if !user.CheckPassword(c.FormValue("password")) {
			fm["message"] = "There is a problem with the login process"

			return flash.WithError(c, fm).Redirect("/login")
		}

		if user.Status != models.STATUS_ACTIVE {
			fm["message"] = "This account is not active"

			return flash.WithError(c, fm).Redirect("/login")
		}

		if err := ac.establishSession(c, user); err != nil {
			fm["message"] = fmt.Sprintf("something went wrong: %s", err)

			return flash.WithError(c, fm).Redirect("/login")
		}

		fm = fiber.Map{
			"type":    "success",
			"message": "Welcome back, " + user.Name + "!",
		}

		return flash.WithSuccess(c, fm).Redirect("/admin")
	}

	return c.Render("auth/login", fiber.Map{
		"Title":      "Staff Login",
		"Flash":      flash.Get(c),
		"IsLoggedIn": isLoggedIn(c),
	}, "layouts/main")
}

// HandleLogout destroys the staff session
func (ac *AuthController) HandleLogout(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = "logged out (no sess)"

		return flash.WithError(c, fm).Redirect("/login")
	}

	if err := sess.Destroy(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "You are signed out.",
	}

	c.Locals(FROM_PROTECTED, false)

	return flash.WithSuccess(c, fm).Redirect("/login")
}

// HandleOAuthBegin starts the Google sign-in dance
func (ac *AuthController) HandleOAuthBegin(c *fiber.Ctx) error {
	return gothfiber.BeginAuthHandler(c)
}

// HandleOAuthCallback completes Google sign-in. Only pre-provisioned staff
// accounts may enter; unknown identities are turned away.
func (ac *AuthController) HandleOAuthCallback(c *fiber.Ctx) error {
	gothUser, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		log.Printf("oauth callback: %v", err)
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Sign-in failed. Please try again.",
		}).Redirect("/login")
	}

	user, err := ac.repos.User.GetByOAuthSubject(gothUser.Provider, gothUser.UserID)
	if err != nil {
		// Fall back to email matching for accounts created before linking
		user, err = ac.repos.User.GetByEmail(gothUser.Email)
		if err != nil {
			return flash.WithError(c, fiber.Map{
				"type":    "error",
				"message": "No staff account exists for this identity.",
			}).Redirect("/login")
		}
		user.OAuthProvider = gothUser.Provider
		user.OAuthSubject = gothUser.UserID
		if uerr := ac.repos.User.Update(user); uerr != nil {
			log.Printf("linking oauth identity for user %d: %v", user.ID, uerr)
		}
	}

	if user.Status != models.STATUS_ACTIVE {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "This account is not active",
		}).Redirect("/login")
	}

	if err := ac.establishSession(c, user); err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("something went wrong: %s", err),
		}).Redirect("/login")
	}

	return flash.WithSuccess(c, fiber.Map{
		"type":    "success",
		"message": "Welcome back, " + user.Name + "!",
	}).Redirect("/admin")
}

// establishSession writes the staff session after a successful login
func (ac *AuthController) establishSession(c *fiber.Ctx, user *models.User) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}

	sess.Set(AUTH_KEY, true)
	sess.Set(USER_ID, user.ID)
	sess.Set(USER_NAME, user.Name)
	sess.Set(USER_IS_ADMIN, user.IsAdmin())

	if err := sess.Save(); err != nil {
		return err
	}

	if err := ac.repos.User.TouchLastLogin(user.ID); err != nil {
		log.Printf("updating last login for user %d: %v", user.ID, err)
	}

	return nil
}
