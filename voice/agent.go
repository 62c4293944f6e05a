package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const DefaultModel = openai.GPT4oMini

// Completer abstracts the chat completion call so the agent can be
// exercised in tests without a live API key.
type Completer interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error)
}

// OpenAICompleter calls the OpenAI chat completions API with JSON output
// enforced.
type OpenAICompleter struct {
	client *openai.Client
	model  string
}

func NewOpenAICompleter(apiKey, model string) *OpenAICompleter {
	if model == "" {
		model = DefaultModel
	}
	return &OpenAICompleter{client: openai.NewClient(apiKey), model: model}
}

func (c *OpenAICompleter) Complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:          c.model,
		Messages:       messages,
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
		Temperature:    0.7,
		MaxTokens:      500,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// Agent turns a spoken utterance into a structured action envelope.
type Agent struct {
	completer Completer
	logger    zerolog.Logger
}

func NewAgent(completer Completer, logger zerolog.Logger) *Agent {
	return &Agent{completer: completer, logger: logger}
}

func systemPrompt() string {
	return fmt.Sprintf(`You are a helpful shopping assistant for an Indian grocery delivery app. You help users:
- Add items to cart by searching and adding automatically
- Remove items from cart
- Update quantities
- Navigate the app (home, cart, checkout, orders, categories)
- Add ingredients for recipes (you have access to: %s)
- Answer questions about cart, orders, and products

You must ALWAYS respond with valid JSON in this exact format:
{
  "action": "<action_type>",
  "params": { <action_parameters> },
  "response": "<spoken_response_to_user>",
  "conversationState": {
    "state": "<conversation_state>",
    "context": { <optional_context> }
  },
  "confidence": <0.0_to_1.0>
}

Action types:
- search_and_add: Search for product and add to cart automatically. Params: { query: string, quantity?: number } OR { items: [{ query: string, quantity?: number }] } OR { queries: string[] }
- add_to_cart: Add a specific product by id or name. Params: { product_id?: string, product_name?: string, quantity?: number }
- remove_item: Remove an item from cart by cart_item_id or product name (fuzzy). Params: { cart_item_id?: string, product_name?: string }
- update_quantity: Update cart item quantity. Params: { cart_item_id?: string, product_name?: string, quantity: number }
- search_products: Search product catalog. Params: { query: string }
- add_recipe_ingredients: Add all recipe items. Params: { recipe_name: string }
- navigate: Go to page. Params: { target: "home"|"cart"|"checkout"|"orders"|"profile"|"back" }
- get_cart: Get cart contents. Params: {}
- checkout: Start checkout. Params: {}
- clear_cart: Remove all items from the user's cart. Params: {}
- create_address: Create a shipping address. Params: { full_name: string, phone_number: string, address_line1: string, address_line2?: string, city: string, state: string, postal_code: string, is_default?: boolean }
- update_address: Update an existing address. Params: { id: number, full_name?: string, phone_number?: string, address_line1?: string, address_line2?: string, city?: string, state?: string, postal_code?: string, is_default?: boolean }
- set_default_address: Set default address. Params: { id: number }
- fallback: When unclear. Params: { message: string }

Conversation states: idle, adding_items, confirming_cart, confirming_checkout

IMPORTANT RULES:
1. When user says "add milk", "add eggs", etc., use search_and_add action with the product name
2. For recipes, use add_recipe_ingredients with the recipe name
3. For navigation like "go to cart", "show cart", "open cart", use navigate with target="cart"
4. For "go to checkout", "checkout", use navigate with target="checkout"
5. For "go to profile", "my profile", use navigate with target="profile". For "go back" use navigate with target="back".
6. For address creation/update: if required fields are missing, use the 'ask' action to request exactly what's missing, in the user's language. When you have all fields, call create_address or update_address.
7. Use remove_item or update_quantity when the user asks to remove or change quantities for specific items.
8. For commands like "clear my cart", "empty the cart", "remove everything from the cart", use clear_cart.
9. When the user mentions multiple products in one sentence (e.g. "add bread and butter"), use search_and_add with an items array (one entry per product) and include quantities if specified.
10. Be conversational and helpful in your responses.
11. Respond in the same language the user speaks (English or Hindi).
12. Default quantity is 1 if not specified.

Examples:
User: "Add milk to cart"
Response: {"action":"search_and_add","params":{"query":"milk","quantity":1},"response":"Adding milk to your cart.","conversationState":{"state":"adding_items"},"confidence":0.9}

User: "Add 2 packets of eggs"
Response: {"action":"search_and_add","params":{"query":"eggs","quantity":2},"response":"Adding 2 packets of eggs to your cart.","conversationState":{"state":"adding_items"},"confidence":0.95}

User: "Add bread and butter to my cart"
Response: {"action":"search_and_add","params":{"items":[{"query":"bread"},{"query":"butter"}]},"response":"Adding bread and butter to your cart.","conversationState":{"state":"adding_items"},"confidence":0.95}

User: "Remove milk from cart"
Response: {"action":"remove_item","params":{"product_name":"milk"},"response":"Removing milk from your cart.","conversationState":{"state":"confirming_cart"},"confidence":0.9}

User: "Remove everything from my cart"
Response: {"action":"clear_cart","params":{},"response":"Clearing all items from your cart.","conversationState":{"state":"confirming_cart"},"confidence":0.95}

User: "Add ingredients for chicken biryani"
Response: {"action":"add_recipe_ingredients","params":{"recipe_name":"chicken biryani"},"response":"Adding all ingredients for chicken biryani to your cart.","conversationState":{"state":"adding_items"},"confidence":0.95}

User: "Go to checkout" OR "Show cart" OR "Open cart"
Response: {"action":"navigate","params":{"target":"cart"},"response":"Opening your cart.","conversationState":{"state":"idle"},"confidence":1.0}

User: "Go to checkout"
Response: {"action":"navigate","params":{"target":"checkout"},"response":"Taking you to checkout.","conversationState":{"state":"confirming_checkout"},"confidence":1.0}

User (Hindi): "दूध डालो"
Response: {"action":"search_and_add","params":{"query":"milk","quantity":1},"response":"दूध आपके कार्ट में जोड़ रहा हूं।","conversationState":{"state":"adding_items"},"confidence":0.9}

User (Bengali): "দুধ দাও"
Response: {"action":"search_and_add","params":{"query":"milk","quantity":1},"response":"দুধ কার্টে যোগ করছি।","conversationState":{"state":"adding_items"},"confidence":0.9}

User (Hindi): "मेरा पता जोड़ो: नाम रोहित, फोन 9876543210, पता लाइन 1 221B बेकर स्ट्रीट, शहर दिल्ली, राज्य दिल्ली, पिन 110001"
Response: {"action":"create_address","params":{"full_name":"Rohit","phone_number":"9876543210","address_line1":"221B Baker Street","city":"Delhi","state":"Delhi","postal_code":"110001","is_default":true},"response":"आपका पता सेव कर रहा हूं।","conversationState":{"state":"requesting_address"},"confidence":0.9}

User (Bengali): "ডিফল্ট ঠিকানা সেট করো"
Response: {"action":"ask","params":{},"response":"কোন ঠিকানাটি ডিফল্ট করতে চান? অনুগ্রহ করে ঠিকানার আইডি বলুন।","conversationState":{"state":"requesting_address"},"confidence":0.6}`, strings.Join(AllRecipeNames(), ", "))
}

func fallbackEnvelope() *Envelope {
	const msg = "I encountered an error. Could you please repeat that?"
	return &Envelope{
		Action:            ActionFallback,
		Params:            map[string]any{"message": msg},
		Response:          msg,
		ConversationState: &ConversationState{State: "idle"},
		Confidence:        0,
	}
}

// Interpret sends the utterance plus recent conversation history to the
// model and parses the structured envelope it returns. Any failure,
// including malformed model output, yields the fallback envelope rather
// than an error so the caller can always speak something back.
func (a *Agent) Interpret(ctx context.Context, userID string, req Request) *Envelope {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt()},
	}

	if req.ConversationState != nil {
		messages = append(messages, historyMessages(req.ConversationState)...)
	}

	userContent := req.Text
	if strings.HasPrefix(req.Language, "hi") {
		userContent = "The user is speaking Hindi. Understand the Hindi text and map any Hindi product or brand names into English product/catalog names in action params (like \"milk\", \"eggs\", \"turmeric powder\"). Always respond to the user in natural Hindi.\nUser: " + req.Text
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: userContent})

	raw, err := a.completer.Complete(ctx, messages)
	if err != nil {
		a.logger.Error().Err(err).Msg("voice completion failed")
		return fallbackEnvelope()
	}

	var env Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		a.logger.Error().Err(err).Msg("voice completion returned malformed JSON")
		return fallbackEnvelope()
	}
	if env.Action == "" || env.Response == "" {
		a.logger.Error().Str("raw", raw).Msg("voice completion missing action or response")
		return fallbackEnvelope()
	}
	if env.Params == nil {
		env.Params = map[string]any{}
	}
	if env.ConversationState == nil {
		env.ConversationState = inheritState(req.ConversationState)
	}

	a.logger.Info().
		Str("user", truncateID(userID)).
		Str("action", string(env.Action)).
		Float64("confidence", env.Confidence).
		Msg("voice agent")

	return &env
}

// historyMessages replays up to the last three exchanges so the model can
// resolve references like "remove that one".
func historyMessages(state *ConversationState) []openai.ChatCompletionMessage {
	raw, ok := state.Context["history"].([]any)
	if !ok {
		return nil
	}
	if len(raw) > 3 {
		raw = raw[len(raw)-3:]
	}
	var messages []openai.ChatCompletionMessage
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok || entry == nil {
			continue
		}
		userText, _ := entry["userInput"].(string)
		assistantText, _ := entry["agentResponse"].(string)
		if assistantText == "" {
			assistantText, _ = entry["response"].(string)
		}
		messages = append(messages,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: userText},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: assistantText},
		)
	}
	return messages
}

func inheritState(prev *ConversationState) *ConversationState {
	if prev == nil {
		return &ConversationState{State: "idle", Context: map[string]any{}}
	}
	state := prev.State
	if state == "" {
		state = "idle"
	}
	ctx := prev.Context
	if ctx == nil {
		ctx = map[string]any{}
	}
	return &ConversationState{State: state, Context: ctx}
}

func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
