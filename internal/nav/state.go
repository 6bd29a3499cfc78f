// Package nav owns the single source of truth for what screen a session is
// on, plus the auxiliary selection state the screens read.
package nav

import (
	"strings"
	"sync"
	"time"
)

// Screen is an enumerated navigation target.
type Screen string

// All screens the storefront can show.
const (
	ScreenHome                 Screen = "home"
	ScreenProducts             Screen = "products"
	ScreenCategoryProducts     Screen = "category-products"
	ScreenProductDetail        Screen = "product-detail"
	ScreenQuoteBuilder         Screen = "quote-builder"
	ScreenQuoteSuccess         Screen = "quote-success"
	ScreenQuotes               Screen = "quotes"
	ScreenOrders               Screen = "orders"
	ScreenBusinessApp          Screen = "business-app"
	ScreenApplicationSubmitted Screen = "application-submitted"
)

var knownScreens = map[Screen]struct{}{
	ScreenHome:                 {},
	ScreenProducts:             {},
	ScreenCategoryProducts:     {},
	ScreenProductDetail:        {},
	ScreenQuoteBuilder:         {},
	ScreenQuoteSuccess:         {},
	ScreenQuotes:               {},
	ScreenOrders:               {},
	ScreenBusinessApp:          {},
	ScreenApplicationSubmitted: {},
}

// Known reports whether the screen is a recognised navigation target.
func Known(s Screen) bool {
	_, ok := knownScreens[s]
	return ok
}

// Persona is the UI mode switch. It changes available actions and labels on
// the cart/quote screen, never the underlying data.
type Persona string

// Persona values.
const (
	PersonaShopper Persona = "shopper"
	PersonaManager Persona = "manager"
)

func normalizePersona(p Persona) Persona {
	switch Persona(strings.ToLower(strings.TrimSpace(string(p)))) {
	case PersonaManager:
		return PersonaManager
	default:
		return PersonaShopper
	}
}

// State is one session's navigation state.
type State struct {
	Current            Screen    `json:"currentScreen"`
	SelectedProductID  string    `json:"selectedProductId,omitempty"`
	SelectedCategoryID string    `json:"selectedCategoryId,omitempty"`
	Persona            Persona   `json:"persona"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Options carries optional parameters for a navigation transition.
type Options struct {
	CategoryID string
}

// Controller dispatches navigation transitions. Every transition is
// unconditional; the only error handling is the fallback to home for an
// unrecognised screen token.
type Controller struct {
	mu       sync.RWMutex
	now      func() time.Time
	sessions map[string]*State
}

// NewController constructs a Controller.
func NewController() *Controller {
	return &Controller{
		now:      time.Now,
		sessions: make(map[string]*State),
	}
}

// Ensure returns the session's navigation state, initialising it to the
// home screen on first use.
func (c *Controller) Ensure(sessionID string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.ensureLocked(sessionID)
}

// Current returns the session's state when it exists.
func (c *Controller) Current(sessionID string) (State, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	st, ok := c.sessions[sessionID]
	if !ok {
		return State{}, false
	}
	return *st, true
}

// Navigate sets the current screen. An unknown screen falls back to home.
// When opts carries a category id, the selected category is replaced.
func (c *Controller) Navigate(sessionID string, screen Screen, opts Options) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.ensureLocked(sessionID)
	if !Known(screen) {
		screen = ScreenHome
	}
	st.Current = screen
	if strings.TrimSpace(opts.CategoryID) != "" {
		st.SelectedCategoryID = opts.CategoryID
	}
	st.UpdatedAt = c.now()
	return *st
}

// SelectProduct records the selected product and navigates to the
// product-detail screen.
func (c *Controller) SelectProduct(sessionID, productID string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.ensureLocked(sessionID)
	st.SelectedProductID = productID
	st.Current = ScreenProductDetail
	st.UpdatedAt = c.now()
	return *st
}

// SetPersona switches the persona. Unknown values coerce to shopper.
func (c *Controller) SetPersona(sessionID string, p Persona) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.ensureLocked(sessionID)
	st.Persona = normalizePersona(p)
	st.UpdatedAt = c.now()
	return *st
}

// TogglePersona flips between shopper and manager, the keyboard-shortcut
// behavior.
func (c *Controller) TogglePersona(sessionID string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.ensureLocked(sessionID)
	if st.Persona == PersonaManager {
		st.Persona = PersonaShopper
	} else {
		st.Persona = PersonaManager
	}
	st.UpdatedAt = c.now()
	return *st
}

func (c *Controller) ensureLocked(sessionID string) *State {
	if st, ok := c.sessions[sessionID]; ok {
		return st
	}
	st := &State{
		Current:   ScreenHome,
		Persona:   PersonaShopper,
		UpdatedAt: c.now(),
	}
	c.sessions[sessionID] = st
	return st
}
