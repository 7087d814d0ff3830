package handlers

import "github.com/gorilla/sessions"

const clientSessionName = "menu-session"

// The cart lives only in the customer's cookie session as a map of dish id
// (stringified, sessions gob-encode string keys) to quantity. It is never
// written to the store.

func getCart(session *sessions.Session) map[string]int {
	if cart, ok := session.Values["cart"].(map[string]int); ok {
		return cart
	}
	return map[string]int{}
}

func saveCart(session *sessions.Session, cart map[string]int) {
	session.Values["cart"] = cart
}

func clearCart(session *sessions.Session) {
	session.Values["cart"] = map[string]int{}
}
