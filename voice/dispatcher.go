package voice

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"

	addressControllers "github.com/sn0wstorm20202/blinkit-clone/controllers/address"
	cartControllers "github.com/sn0wstorm20202/blinkit-clone/controllers/cart"
	eventControllers "github.com/sn0wstorm20202/blinkit-clone/controllers/events"
	productControllers "github.com/sn0wstorm20202/blinkit-clone/controllers/product"
)

// Dispatcher executes parsed actions directly against the store, so a
// spoken "add milk" goes through the same cart logic as the REST route.
type Dispatcher struct {
	db  *gorm.DB
	hub *eventControllers.Hub
}

func NewDispatcher(db *gorm.DB, hub *eventControllers.Hub) *Dispatcher {
	return &Dispatcher{db: db, hub: hub}
}

// Dispatch runs the envelope's action and always produces a Result, never
// an error: a failed action is a Result with Success false and an error
// code the client can react to.
func (d *Dispatcher) Dispatch(userID string, env *Envelope) Result {
	params := env.Params
	if params == nil {
		params = map[string]any{}
	}

	switch env.Action {
	case ActionSearchAndAdd:
		return d.searchAndAdd(userID, params)
	case ActionAddToCart:
		return d.addToCart(userID, params)
	case ActionRemoveItem:
		return d.removeItem(userID, params)
	case ActionUpdateQuantity:
		return d.updateQuantity(userID, params)
	case ActionNavigate:
		return d.navigate(params)
	case ActionSearchProducts:
		return d.searchProducts(params)
	case ActionCheckout:
		return Result{Success: true, Message: "Proceeding to checkout", Data: map[string]any{"route": "/checkout"}}
	case ActionAddRecipeIngredients:
		return d.addRecipeIngredients(userID, params)
	case ActionGetCart:
		return d.getCart(userID)
	case ActionClearCart:
		return d.clearCart(userID)
	case ActionCreateAddress:
		return d.createAddress(userID, params)
	case ActionUpdateAddress:
		return d.updateAddress(userID, params)
	case ActionSetDefaultAddress:
		return d.setDefaultAddress(userID, params)
	case ActionAsk, ActionConfirm, ActionFallback:
		return Result{Success: true, Message: env.Response}
	default:
		return Result{Success: false, Message: "Unknown action", Error: "UNKNOWN_ACTION"}
	}
}

func (d *Dispatcher) notifyCart(userID string) {
	if d.hub != nil {
		d.hub.NotifyCartUpdated(userID)
	}
}

type batchItem struct {
	query    string
	quantity int
}

// searchAndAdd accepts three parameter shapes: a single query, an items
// array with per-item quantities, or a bare queries array. Batches succeed
// when at least one item lands in the cart.
func (d *Dispatcher) searchAndAdd(userID string, params map[string]any) Result {
	items := batchItems(params)
	if items != nil {
		var added, failed []string
		for _, item := range items {
			name, ok := d.searchAndAddOne(userID, item.query, item.quantity)
			if ok {
				added = append(added, name)
			} else {
				failed = append(failed, item.query)
			}
		}
		if len(added) == 0 {
			return Result{Success: false, Message: "Could not add any of the requested items to your cart", Error: "NO_ITEMS_ADDED"}
		}
		message := fmt.Sprintf("Added %d item(s) to your cart", len(added))
		if len(failed) > 0 {
			message = fmt.Sprintf("%s. Could not add: %s", message, strings.Join(failed, ", "))
		}
		return Result{Success: true, Message: message, Data: map[string]any{"added": added, "failed": failed}}
	}

	query := strings.TrimSpace(stringParam(params, "query"))
	if query == "" {
		return Result{Success: false, Message: "Search term required", Error: "MISSING_QUERY"}
	}
	quantity := intParam(params, "quantity", 1)

	product := d.bestMatch(query)
	if product == nil {
		return Result{Success: false, Message: fmt.Sprintf("No products found for %q", query), Error: "NO_RESULTS"}
	}
	return d.addProduct(userID, product.ID, quantity)
}

func (d *Dispatcher) searchAndAddOne(userID, query string, quantity int) (string, bool) {
	product := d.bestMatch(query)
	if product == nil {
		return "", false
	}
	if res := d.addProduct(userID, product.ID, quantity); !res.Success {
		return "", false
	}
	return product.Name, true
}

// bestMatch prefers an exact case-insensitive name match over the newest
// search hit.
func (d *Dispatcher) bestMatch(query string) *productControllers.ProductView {
	results, err := productControllers.SearchProducts(d.db, productControllers.SearchParams{Search: query})
	if err != nil || len(results) == 0 {
		return nil
	}
	for i := range results {
		if strings.EqualFold(results[i].Name, query) {
			return &results[i]
		}
	}
	return &results[0]
}

func (d *Dispatcher) addProduct(userID string, productID uint, quantity int) Result {
	if quantity <= 0 {
		quantity = 1
	}
	item, _, err := cartControllers.AddItem(d.db, userID, productID, quantity)
	if err != nil {
		if errors.Is(err, cartControllers.ErrProductNotFound) {
			return Result{Success: false, Message: "Product not found", Error: "PRODUCT_NOT_FOUND"}
		}
		return Result{Success: false, Message: "Failed to add item", Error: "ADD_FAILED"}
	}
	d.notifyCart(userID)
	return Result{Success: true, Message: fmt.Sprintf("Added %d item(s) to cart", quantity), Data: item}
}

func (d *Dispatcher) addToCart(userID string, params map[string]any) Result {
	quantity := intParam(params, "quantity", 1)

	if id, ok := uintParam(params, "product_id"); ok {
		return d.addProduct(userID, id, quantity)
	}

	name := stringParam(params, "product_name", "product", "name")
	if name == "" {
		return Result{Success: false, Message: "Product not specified", Error: "MISSING_PRODUCT"}
	}
	results, err := productControllers.SearchProducts(d.db, productControllers.SearchParams{Search: name})
	if err != nil || len(results) == 0 {
		return Result{Success: false, Message: fmt.Sprintf("No products found for %q", name), Error: "NO_RESULTS"}
	}
	return d.addProduct(userID, results[0].ID, quantity)
}

// resolveCartItem finds a cart item either by explicit id or by a fuzzy
// substring match against the product names currently in the cart.
func (d *Dispatcher) resolveCartItem(userID string, params map[string]any) (uint, bool) {
	if id, ok := uintParam(params, "cart_item_id"); ok {
		return id, true
	}
	name := stringParam(params, "product_name", "product", "name", "item_name", "productName", "itemName")
	if name == "" {
		return 0, false
	}
	view, err := cartControllers.GetCart(d.db, userID)
	if err != nil {
		return 0, false
	}
	needle := strings.ToLower(name)
	for _, item := range view.Items {
		if strings.Contains(strings.ToLower(item.Product.Name), needle) {
			return item.ID, true
		}
	}
	return 0, false
}

func (d *Dispatcher) removeItem(userID string, params map[string]any) Result {
	itemID, ok := d.resolveCartItem(userID, params)
	if !ok {
		return Result{Success: false, Message: "Item not specified", Error: "MISSING_ITEM_ID"}
	}
	if err := cartControllers.RemoveItem(d.db, userID, itemID); err != nil {
		if errors.Is(err, cartControllers.ErrItemNotFound) {
			return Result{Success: false, Message: "Cart item not found", Error: "NOT_FOUND"}
		}
		return Result{Success: false, Message: "Failed to remove item", Error: "REMOVE_FAILED"}
	}
	d.notifyCart(userID)
	return Result{Success: true, Message: "Item removed from cart"}
}

func (d *Dispatcher) updateQuantity(userID string, params map[string]any) Result {
	itemID, ok := d.resolveCartItem(userID, params)
	quantity := intParam(params, "quantity", 0)
	if !ok || quantity <= 0 {
		return Result{Success: false, Message: "Missing required parameters", Error: "MISSING_PARAMS"}
	}
	if _, err := cartControllers.UpdateItemQuantity(d.db, userID, itemID, quantity); err != nil {
		if errors.Is(err, cartControllers.ErrItemNotFound) {
			return Result{Success: false, Message: "Cart item not found", Error: "NOT_FOUND"}
		}
		return Result{Success: false, Message: "Failed to update quantity", Error: "UPDATE_FAILED"}
	}
	d.notifyCart(userID)
	return Result{Success: true, Message: fmt.Sprintf("Updated quantity to %d", quantity)}
}

var routeMap = map[string]string{
	"home":       "/",
	"cart":       "/",
	"checkout":   "/checkout",
	"orders":     "/orders",
	"profile":    "/profile",
	"categories": "/",
	"products":   "/",
}

func (d *Dispatcher) navigate(params map[string]any) Result {
	target := strings.ToLower(strings.TrimSpace(stringParam(params, "target")))

	switch target {
	case "back", "go back", "previous":
		return Result{Success: true, Message: "Going back", Data: map[string]any{"historyBack": true}}
	case "cart":
		return Result{Success: true, Message: "Opening cart", Data: map[string]any{"route": routeMap["cart"], "openCart": true}}
	}

	route, ok := routeMap[target]
	if !ok {
		return Result{Success: false, Message: "Invalid navigation target", Error: "INVALID_TARGET"}
	}
	return Result{Success: true, Message: fmt.Sprintf("Navigating to %s", target), Data: map[string]any{"route": route}}
}

func (d *Dispatcher) searchProducts(params map[string]any) Result {
	query := stringParam(params, "query")
	if query == "" {
		query = stringParam(params, "category")
	}
	if query == "" {
		return Result{Success: false, Message: "Search query required", Error: "MISSING_QUERY"}
	}
	results, err := productControllers.SearchProducts(d.db, productControllers.SearchParams{Search: query})
	if err != nil {
		return Result{Success: false, Message: "Search failed", Error: "SEARCH_ERROR"}
	}
	return Result{Success: true, Message: fmt.Sprintf("Found %d product(s)", len(results)), Data: results}
}

func (d *Dispatcher) addRecipeIngredients(userID string, params map[string]any) Result {
	name := stringParam(params, "recipe_name", "recipe")
	if name == "" {
		return Result{Success: false, Message: "Recipe name required", Error: "MISSING_RECIPE_NAME"}
	}
	recipe := FindRecipe(name)
	if recipe == nil {
		return Result{Success: false, Message: fmt.Sprintf("Recipe %q not found", name), Error: "RECIPE_NOT_FOUND"}
	}

	var added, failed []string
	for _, ingredient := range recipe.Ingredients {
		terms := append([]string{ingredient.ProductName}, ingredient.Alternatives...)
		matched := false
		for _, term := range terms {
			results, err := productControllers.SearchProducts(d.db, productControllers.SearchParams{Search: term})
			if err != nil || len(results) == 0 {
				continue
			}
			if res := d.addProduct(userID, results[0].ID, 1); res.Success {
				added = append(added, results[0].Name)
				matched = true
				break
			}
		}
		if !matched {
			failed = append(failed, ingredient.ProductName)
		}
	}

	if len(added) == 0 {
		return Result{Success: false, Message: fmt.Sprintf("Could not find ingredients for %s", recipe.Name), Error: "NO_INGREDIENTS_FOUND"}
	}
	message := fmt.Sprintf("Added all %d ingredients for %s", len(added), recipe.Name)
	if len(failed) > 0 {
		message = fmt.Sprintf("Added %d ingredients for %s. Could not find: %s", len(added), recipe.Name, strings.Join(failed, ", "))
	}
	return Result{Success: true, Message: message, Data: map[string]any{"addedItems": added, "failedItems": failed}}
}

func (d *Dispatcher) getCart(userID string) Result {
	view, err := cartControllers.GetCart(d.db, userID)
	if err != nil {
		return Result{Success: false, Message: "Failed to fetch cart", Error: "CART_FETCH_ERROR"}
	}
	return Result{Success: true, Message: "Cart fetched", Data: view}
}

func (d *Dispatcher) clearCart(userID string) Result {
	if _, err := cartControllers.ClearCart(d.db, userID); err != nil && !errors.Is(err, cartControllers.ErrCartNotFound) {
		return Result{Success: false, Message: "Failed to clear cart", Error: "CLEAR_CART_ERROR"}
	}
	d.notifyCart(userID)
	return Result{Success: true, Message: "Cart cleared"}
}

// normalizeAddress folds the snake_case, camelCase and colloquial aliases
// the model emits into one input shape.
func normalizeAddress(params map[string]any) addressControllers.CreateInput {
	return addressControllers.CreateInput{
		FullName:     stringParam(params, "full_name", "fullName", "name"),
		PhoneNumber:  stringParam(params, "phone_number", "phoneNumber", "phone"),
		AddressLine1: stringParam(params, "address_line1", "addressLine1", "line1"),
		AddressLine2: stringParam(params, "address_line2", "addressLine2", "line2"),
		City:         stringParam(params, "city"),
		State:        stringParam(params, "state"),
		PostalCode:   stringParam(params, "postal_code", "postalCode", "pincode"),
		IsDefault:    boolParam(params, "is_default", "isDefault"),
	}
}

func (d *Dispatcher) createAddress(userID string, params map[string]any) Result {
	input := normalizeAddress(params)
	if missing := input.MissingFields(); len(missing) > 0 {
		return Result{Success: false, Message: "Missing address details", Error: "MISSING_FIELDS"}
	}
	address, err := addressControllers.Create(d.db, userID, input)
	if err != nil {
		return Result{Success: false, Message: "Failed to create address", Error: "ADDR_CREATE_FAILED"}
	}
	return Result{Success: true, Message: "Address saved", Data: address}
}

func (d *Dispatcher) updateAddress(userID string, params map[string]any) Result {
	id, ok := uintParam(params, "id", "address_id")
	if !ok {
		return Result{Success: false, Message: "Address ID required", Error: "MISSING_ID"}
	}

	patch := addressControllers.UpdateInput{}
	if v := stringParam(params, "full_name", "fullName", "name"); v != "" {
		patch.FullName = &v
	}
	if v := stringParam(params, "phone_number", "phoneNumber", "phone"); v != "" {
		patch.PhoneNumber = &v
	}
	if v := stringParam(params, "address_line1", "addressLine1", "line1"); v != "" {
		patch.AddressLine1 = &v
	}
	if v := stringParam(params, "address_line2", "addressLine2", "line2"); v != "" {
		patch.AddressLine2 = &v
	}
	if v := stringParam(params, "city"); v != "" {
		patch.City = &v
	}
	if v := stringParam(params, "state"); v != "" {
		patch.State = &v
	}
	if v := stringParam(params, "postal_code", "postalCode", "pincode"); v != "" {
		patch.PostalCode = &v
	}
	if _, present := firstParam(params, "is_default", "isDefault"); present {
		v := boolParam(params, "is_default", "isDefault")
		patch.IsDefault = &v
	}

	address, err := addressControllers.Update(d.db, userID, id, patch)
	if err != nil {
		if errors.Is(err, addressControllers.ErrNotFound) {
			return Result{Success: false, Message: "Address not found", Error: "NOT_FOUND"}
		}
		return Result{Success: false, Message: "Failed to update address", Error: "ADDR_UPDATE_FAILED"}
	}
	return Result{Success: true, Message: "Address updated", Data: address}
}

func (d *Dispatcher) setDefaultAddress(userID string, params map[string]any) Result {
	id, ok := uintParam(params, "id", "address_id")
	if !ok {
		return Result{Success: false, Message: "Address ID required", Error: "MISSING_ID"}
	}
	address, err := addressControllers.SetDefault(d.db, userID, id)
	if err != nil {
		if errors.Is(err, addressControllers.ErrNotFound) {
			return Result{Success: false, Message: "Address not found", Error: "NOT_FOUND"}
		}
		return Result{Success: false, Message: "Failed to set default address", Error: "ADDR_SET_DEFAULT_FAILED"}
	}
	return Result{Success: true, Message: "Default address set", Data: address}
}

// batchItems extracts the multi-item shapes: items [{query, quantity?}]
// or queries []string. Returns nil for the single-query shape.
func batchItems(params map[string]any) []batchItem {
	if raw, ok := params["items"].([]any); ok {
		var items []batchItem
		for _, entry := range raw {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			query := strings.TrimSpace(stringParam(m, "query"))
			if query == "" {
				continue
			}
			items = append(items, batchItem{query: query, quantity: intParam(m, "quantity", 1)})
		}
		return items
	}
	if raw, ok := params["queries"].([]any); ok {
		var items []batchItem
		for _, entry := range raw {
			query, _ := entry.(string)
			query = strings.TrimSpace(query)
			if query == "" {
				continue
			}
			items = append(items, batchItem{query: query, quantity: 1})
		}
		return items
	}
	return nil
}

func firstParam(params map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := params[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stringParam(params map[string]any, keys ...string) string {
	v, ok := firstParam(params, keys...)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// intParam tolerates the number encodings JSON decoding produces: float64
// for numbers, string when the model quoted the value.
func intParam(params map[string]any, key string, fallback int) int {
	v, ok := firstParam(params, key)
	if !ok {
		return fallback
	}
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return fallback
}

func uintParam(params map[string]any, keys ...string) (uint, bool) {
	v, ok := firstParam(params, keys...)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		// JSON numbers arrive as float64. A fractional value would
		// silently truncate onto some other row's id, so reject it.
		if t > 0 && t == math.Trunc(t) {
			return uint(t), true
		}
	case int:
		if t > 0 {
			return uint(t), true
		}
	case string:
		if n, err := strconv.ParseUint(strings.TrimSpace(t), 10, 64); err == nil && n > 0 {
			return uint(n), true
		}
	}
	return 0, false
}

func boolParam(params map[string]any, keys ...string) bool {
	v, ok := firstParam(params, keys...)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(t, "true")
	}
	return false
}
