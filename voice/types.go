package voice

// Action is the fixed enumeration of operations the shopping agent may
// request. ask/confirm/fallback only surface the agent's spoken response;
// everything else has a side effect.
type Action string

const (
	ActionSearchAndAdd         Action = "search_and_add"
	ActionAddToCart            Action = "add_to_cart"
	ActionRemoveItem           Action = "remove_item"
	ActionUpdateQuantity       Action = "update_quantity"
	ActionNavigate             Action = "navigate"
	ActionSearchProducts       Action = "search_products"
	ActionCheckout             Action = "checkout"
	ActionAddRecipeIngredients Action = "add_recipe_ingredients"
	ActionGetCart              Action = "get_cart"
	ActionClearCart            Action = "clear_cart"
	ActionCreateAddress        Action = "create_address"
	ActionUpdateAddress        Action = "update_address"
	ActionSetDefaultAddress    Action = "set_default_address"
	ActionAsk                  Action = "ask"
	ActionConfirm              Action = "confirm"
	ActionFallback             Action = "fallback"
)

type ConversationState struct {
	State   string         `json:"state"`
	Context map[string]any `json:"context,omitempty"`
}

// Envelope is the constrained JSON shape the completion call must
// produce: one action, its parameters, and the spoken response.
type Envelope struct {
	Action            Action             `json:"action"`
	Params            map[string]any     `json:"params"`
	Response          string             `json:"response"`
	ConversationState *ConversationState `json:"conversationState,omitempty"`
	Confidence        float64            `json:"confidence"`
}

// Result is the uniform outcome of dispatching one envelope. Every
// dispatcher branch resolves to a Result; none panic or raise past the
// API boundary.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Request struct {
	Text              string             `json:"text"`
	Language          string             `json:"language"`
	ConversationState *ConversationState `json:"conversationState"`
}
