package middleware

import (
	"log/slog"

	"parlour/internal/router"
	"parlour/internal/visitor"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const localsVisitor = "visitor"

// Session keys of the persisted visitor fields.
const (
	keyAdminLoggedIn   = "admin_logged_in"
	keyUserLoggedIn    = "user_logged_in"
	keyIdentity        = "identity"
	keyPendingIdentity = "pending_identity"
	keyPage            = "page"
	keyCart            = "cart"
	keyWishlist        = "wishlist"
)

// Session loads the visitor's state from store before the handler runs and
// writes it back afterwards. A state cleared by the handler destroys the
// session so the next request starts as a first visit.
func Session(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			slog.Error("failed to load session", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not load session",
				"error":   err.Error(),
			})
		}

		state := load(sess)
		c.Locals(localsVisitor, state)

		handlerErr := c.Next()

		if state.Cleared() {
			if err := sess.Destroy(); err != nil {
				slog.Error("failed to destroy session", "error", err)
			}
			return handlerErr
		}

		persist(sess, state)
		if err := sess.Save(); err != nil {
			slog.Error("failed to save session", "error", err)
		}
		return handlerErr
	}
}

// Visitor returns the state loaded by Session for the current request.
func Visitor(c *fiber.Ctx) *visitor.State {
	if state, ok := c.Locals(localsVisitor).(*visitor.State); ok {
		return state
	}
	state := visitor.New()
	c.Locals(localsVisitor, state)
	return state
}

func load(sess *session.Session) *visitor.State {
	state := visitor.New()
	if sess.Fresh() {
		return state
	}

	state.AdminLoggedIn, _ = sess.Get(keyAdminLoggedIn).(bool)
	state.UserLoggedIn, _ = sess.Get(keyUserLoggedIn).(bool)
	state.Identity, _ = sess.Get(keyIdentity).(string)
	state.PendingIdentity, _ = sess.Get(keyPendingIdentity).(string)
	state.Cart, _ = sess.Get(keyCart).([]string)
	state.Wishlist, _ = sess.Get(keyWishlist).([]string)

	if raw, ok := sess.Get(keyPage).(string); ok {
		if page, err := router.Parse(raw); err == nil {
			state.Page = page
		}
	}
	return state
}

func persist(sess *session.Session, state *visitor.State) {
	sess.Set(keyAdminLoggedIn, state.AdminLoggedIn)
	sess.Set(keyUserLoggedIn, state.UserLoggedIn)
	sess.Set(keyIdentity, state.Identity)
	sess.Set(keyPendingIdentity, state.PendingIdentity)
	sess.Set(keyPage, string(state.Page))
	setList(sess, keyCart, state.Cart)
	setList(sess, keyWishlist, state.Wishlist)
}

func setList(sess *session.Session, key string, list []string) {
	if len(list) == 0 {
		sess.Delete(key)
		return
	}
	sess.Set(key, list)
}
