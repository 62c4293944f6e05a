package voice

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	cartControllers "github.com/sn0wstorm20202/blinkit-clone/controllers/cart"
	"github.com/sn0wstorm20202/blinkit-clone/models"
)

func newDispatcherDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Address{},
		&models.Cart{},
		&models.CartItem{},
	))
	return db
}

func seedDispatcherCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	dairy := models.Category{Name: "Dairy, Bread & Eggs", ImageURL: "https://img.example/c.png"}
	require.NoError(t, db.Create(&dairy).Error)
	products := []models.Product{
		{Name: "Milk Bikis", CategoryID: dairy.ID, ImageURL: "https://img.example/1.png", Quantity: "100 g", Price: 20},
		{Name: "Milk", CategoryID: dairy.ID, ImageURL: "https://img.example/2.png", Quantity: "500 ml", Price: 30},
		{Name: "Brown Bread", CategoryID: dairy.ID, ImageURL: "https://img.example/3.png", Quantity: "400 g", Price: 45},
		{Name: "Butter", CategoryID: dairy.ID, ImageURL: "https://img.example/4.png", Quantity: "100 g", Price: 55},
	}
	require.NoError(t, db.Create(&products).Error)
}

func dispatch(d *Dispatcher, userID string, action Action, params map[string]any) Result {
	return d.Dispatch(userID, &Envelope{Action: action, Params: params})
}

func cartView(t *testing.T, db *gorm.DB, userID string) *cartControllers.View {
	t.Helper()
	view, err := cartControllers.GetCart(db, userID)
	require.NoError(t, err)
	return view
}

func TestDispatchSearchAndAddExactMatchWins(t *testing.T) {
	db := newDispatcherDB(t)
	seedDispatcherCatalog(t, db)
	d := NewDispatcher(db, nil)

	// Both products match the substring; the exact name match must win
	// regardless of result order.
	res := dispatch(d, "user-1", ActionSearchAndAdd, map[string]any{"query": "milk", "quantity": float64(2)})
	require.True(t, res.Success, res.Error)

	view := cartView(t, db, "user-1")
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Milk", view.Items[0].Product.Name)
	assert.Equal(t, 2, view.Items[0].Quantity)
}

func TestDispatchSearchAndAddMissingQuery(t *testing.T) {
	db := newDispatcherDB(t)
	d := NewDispatcher(db, nil)

	res := dispatch(d, "user-1", ActionSearchAndAdd, map[string]any{})
	assert.False(t, res.Success)
	assert.Equal(t, "MISSING_QUERY", res.Error)
}

func TestDispatchSearchAndAddBatchPartialSuccess(t *testing.T) {
	db := newDispatcherDB(t)
	seedDispatcherCatalog(t, db)
	d := NewDispatcher(db, nil)

	res := dispatch(d, "user-1", ActionSearchAndAdd, map[string]any{
		"items": []any{
			map[string]any{"query": "bread"},
			map[string]any{"query": "unobtainium"},
			map[string]any{"query": "butter", "quantity": float64(2)},
		},
	})
	require.True(t, res.Success)

	data, ok := res.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"Brown Bread", "Butter"}, data["added"])
	assert.Equal(t, []string{"unobtainium"}, data["failed"])
	assert.Contains(t, res.Message, "Could not add: unobtainium")
}

func TestDispatchSearchAndAddBatchAllFail(t *testing.T) {
	db := newDispatcherDB(t)
	seedDispatcherCatalog(t, db)
	d := NewDispatcher(db, nil)

	res := dispatch(d, "user-1", ActionSearchAndAdd, map[string]any{
		"queries": []any{"unobtainium", "adamantium"},
	})
	assert.False(t, res.Success)
	assert.Equal(t, "NO_ITEMS_ADDED", res.Error)
}

func TestDispatchSearchAndAddQueriesShape(t *testing.T) {
	db := newDispatcherDB(t)
	seedDispatcherCatalog(t, db)
	d := NewDispatcher(db, nil)

	res := dispatch(d, "user-1", ActionSearchAndAdd, map[string]any{
		"queries": []any{"bread", "butter"},
	})
	require.True(t, res.Success)
	assert.Len(t, cartView(t, db, "user-1").Items, 2)
}

func TestDispatchAddToCartByName(t *testing.T) {
	db := newDispatcherDB(t)
	seedDispatcherCatalog(t, db)
	d := NewDispatcher(db, nil)

	res := dispatch(d, "user-1", ActionAddToCart, map[string]any{"product_name": "bread"})
	require.True(t, res.Success)

	res = dispatch(d, "user-1", ActionAddToCart, map[string]any{})
	assert.False(t, res.Success)
	assert.Equal(t, "MISSING_PRODUCT", res.Error)
}

func TestDispatchRemoveItemFuzzyMatch(t *testing.T) {
	db := newDispatcherDB(t)
	seedDispatcherCatalog(t, db)
	d := NewDispatcher(db, nil)

	require.True(t, dispatch(d, "user-1", ActionSearchAndAdd, map[string]any{"query": "brown bread"}).Success)

	// Alias key and partial name both resolve.
	res := dispatch(d, "user-1", ActionRemoveItem, map[string]any{"productName": "bread"})
	require.True(t, res.Success, res.Error)
	assert.Empty(t, cartView(t, db, "user-1").Items)

	res = dispatch(d, "user-1", ActionRemoveItem, map[string]any{"product_name": "bread"})
	assert.False(t, res.Success)
	assert.Equal(t, "MISSING_ITEM_ID", res.Error)
}

func TestDispatchUpdateQuantity(t *testing.T) {
	db := newDispatcherDB(t)
	seedDispatcherCatalog(t, db)
	d := NewDispatcher(db, nil)

	require.True(t, dispatch(d, "user-1", ActionSearchAndAdd, map[string]any{"query": "butter"}).Success)

	res := dispatch(d, "user-1", ActionUpdateQuantity, map[string]any{"product_name": "butter", "quantity": float64(4)})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, 4, cartView(t, db, "user-1").Items[0].Quantity)

	res = dispatch(d, "user-1", ActionUpdateQuantity, map[string]any{"product_name": "butter"})
	assert.False(t, res.Success)
	assert.Equal(t, "MISSING_PARAMS", res.Error)
}

func TestDispatchNavigate(t *testing.T) {
	d := NewDispatcher(newDispatcherDB(t), nil)

	res := dispatch(d, "user-1", ActionNavigate, map[string]any{"target": "orders"})
	require.True(t, res.Success)
	data := res.Data.(map[string]any)
	assert.Equal(t, "/orders", data["route"])

	res = dispatch(d, "user-1", ActionNavigate, map[string]any{"target": "Cart"})
	require.True(t, res.Success)
	data = res.Data.(map[string]any)
	assert.Equal(t, true, data["openCart"])

	res = dispatch(d, "user-1", ActionNavigate, map[string]any{"target": "back"})
	require.True(t, res.Success)
	data = res.Data.(map[string]any)
	assert.Equal(t, true, data["historyBack"])

	res = dispatch(d, "user-1", ActionNavigate, map[string]any{"target": "narnia"})
	assert.False(t, res.Success)
	assert.Equal(t, "INVALID_TARGET", res.Error)
}

func TestDispatchCheckout(t *testing.T) {
	d := NewDispatcher(newDispatcherDB(t), nil)

	res := dispatch(d, "user-1", ActionCheckout, nil)
	require.True(t, res.Success)
	assert.Equal(t, "/checkout", res.Data.(map[string]any)["route"])
}

func TestDispatchSearchProducts(t *testing.T) {
	db := newDispatcherDB(t)
	seedDispatcherCatalog(t, db)
	d := NewDispatcher(db, nil)

	res := dispatch(d, "user-1", ActionSearchProducts, map[string]any{"query": "milk"})
	require.True(t, res.Success)
	assert.Contains(t, res.Message, "2 product(s)")

	res = dispatch(d, "user-1", ActionSearchProducts, map[string]any{})
	assert.False(t, res.Success)
	assert.Equal(t, "MISSING_QUERY", res.Error)
}

func TestDispatchAddRecipeIngredients(t *testing.T) {
	db := newDispatcherDB(t)
	d := NewDispatcher(db, nil)

	dairy := models.Category{Name: "Dairy, Bread & Eggs", ImageURL: "https://img.example/c.png"}
	require.NoError(t, db.Create(&dairy).Error)
	products := []models.Product{
		{Name: "Fresh Chicken", CategoryID: dairy.ID, ImageURL: "https://img.example/1.png", Quantity: "1 kg", Price: 250},
		{Name: "Amul Butter", CategoryID: dairy.ID, ImageURL: "https://img.example/2.png", Quantity: "100 g", Price: 55},
		{Name: "Fresh Cream", CategoryID: dairy.ID, ImageURL: "https://img.example/3.png", Quantity: "200 ml", Price: 80},
		{Name: "Tomato", CategoryID: dairy.ID, ImageURL: "https://img.example/4.png", Quantity: "1 kg", Price: 40},
		{Name: "Onion", CategoryID: dairy.ID, ImageURL: "https://img.example/5.png", Quantity: "1 kg", Price: 35},
	}
	require.NoError(t, db.Create(&products).Error)

	res := dispatch(d, "user-1", ActionAddRecipeIngredients, map[string]any{"recipe_name": "butter chicken"})
	require.True(t, res.Success, res.Error)

	data := res.Data.(map[string]any)
	added := data["addedItems"].([]string)
	failed := data["failedItems"].([]string)
	assert.Contains(t, added, "Fresh Chicken")
	assert.Contains(t, added, "Fresh Cream")
	assert.Contains(t, failed, "kasuri methi")
	assert.Contains(t, res.Message, "Could not find")

	res = dispatch(d, "user-1", ActionAddRecipeIngredients, map[string]any{"recipe_name": "sushi"})
	assert.False(t, res.Success)
	assert.Equal(t, "RECIPE_NOT_FOUND", res.Error)

	res = dispatch(d, "user-1", ActionAddRecipeIngredients, map[string]any{})
	assert.False(t, res.Success)
	assert.Equal(t, "MISSING_RECIPE_NAME", res.Error)
}

func TestDispatchGetAndClearCart(t *testing.T) {
	db := newDispatcherDB(t)
	seedDispatcherCatalog(t, db)
	d := NewDispatcher(db, nil)

	require.True(t, dispatch(d, "user-1", ActionSearchAndAdd, map[string]any{"query": "milk"}).Success)

	res := dispatch(d, "user-1", ActionGetCart, nil)
	require.True(t, res.Success)
	view := res.Data.(*cartControllers.View)
	assert.Equal(t, 1, view.ItemCount)

	res = dispatch(d, "user-1", ActionClearCart, nil)
	require.True(t, res.Success)
	assert.Empty(t, cartView(t, db, "user-1").Items)
}

func TestDispatchCreateAddressNormalizesAliases(t *testing.T) {
	db := newDispatcherDB(t)
	d := NewDispatcher(db, nil)

	// camelCase and colloquial keys straight from the model.
	res := dispatch(d, "user-1", ActionCreateAddress, map[string]any{
		"fullName":     "Rohit",
		"phone":        "9876543210",
		"addressLine1": "221B Baker Street",
		"city":         "Delhi",
		"state":        "Delhi",
		"pincode":      "110001",
		"isDefault":    true,
	})
	require.True(t, res.Success, res.Error)

	address := res.Data.(*models.Address)
	assert.Equal(t, "Rohit", address.FullName)
	assert.Equal(t, "110001", address.PostalCode)
	assert.True(t, address.IsDefault)

	res = dispatch(d, "user-1", ActionCreateAddress, map[string]any{"full_name": "Rohit"})
	assert.False(t, res.Success)
	assert.Equal(t, "MISSING_FIELDS", res.Error)
}

func TestDispatchUpdateAndSetDefaultAddress(t *testing.T) {
	db := newDispatcherDB(t)
	d := NewDispatcher(db, nil)

	res := dispatch(d, "user-1", ActionCreateAddress, map[string]any{
		"full_name":     "Rohit",
		"phone_number":  "9876543210",
		"address_line1": "221B Baker Street",
		"city":          "Delhi",
		"state":         "Delhi",
		"postal_code":   "110001",
	})
	require.True(t, res.Success)
	created := res.Data.(*models.Address)

	res = dispatch(d, "user-1", ActionUpdateAddress, map[string]any{"address_id": float64(created.ID), "city": "Mumbai"})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "Mumbai", res.Data.(*models.Address).City)

	res = dispatch(d, "user-1", ActionUpdateAddress, map[string]any{"city": "Pune"})
	assert.False(t, res.Success)
	assert.Equal(t, "MISSING_ID", res.Error)

	res = dispatch(d, "user-1", ActionSetDefaultAddress, map[string]any{"id": float64(created.ID)})
	require.True(t, res.Success)
	assert.True(t, res.Data.(*models.Address).IsDefault)

	res = dispatch(d, "user-2", ActionSetDefaultAddress, map[string]any{"id": float64(created.ID)})
	assert.False(t, res.Success)
	assert.Equal(t, "NOT_FOUND", res.Error)
}

func TestDispatchRejectsFractionalIDs(t *testing.T) {
	db := newDispatcherDB(t)
	d := NewDispatcher(db, nil)

	res := dispatch(d, "user-1", ActionCreateAddress, map[string]any{
		"full_name":     "Rohit",
		"phone_number":  "9876543210",
		"address_line1": "221B Baker Street",
		"city":          "Delhi",
		"state":         "Delhi",
		"postal_code":   "110001",
	})
	require.True(t, res.Success)
	created := res.Data.(*models.Address)

	// A fractional id from the model must not truncate onto a real row.
	res = dispatch(d, "user-1", ActionSetDefaultAddress, map[string]any{"id": float64(created.ID) + 0.9})
	assert.False(t, res.Success)
	assert.Equal(t, "MISSING_ID", res.Error)

	res = dispatch(d, "user-1", ActionUpdateAddress, map[string]any{"address_id": 7.9, "city": "Pune"})
	assert.False(t, res.Success)
	assert.Equal(t, "MISSING_ID", res.Error)
}

func TestUintParamIntegrality(t *testing.T) {
	_, ok := uintParam(map[string]any{"id": 7.9}, "id")
	assert.False(t, ok)

	id, ok := uintParam(map[string]any{"id": float64(7)}, "id")
	require.True(t, ok)
	assert.EqualValues(t, 7, id)
}

func TestDispatchConversationalActions(t *testing.T) {
	d := NewDispatcher(newDispatcherDB(t), nil)

	env := &Envelope{Action: ActionAsk, Response: "Which address should I use?"}
	res := d.Dispatch("user-1", env)
	assert.True(t, res.Success)
	assert.Equal(t, "Which address should I use?", res.Message)

	res = d.Dispatch("user-1", &Envelope{Action: Action("teleport")})
	assert.False(t, res.Success)
	assert.Equal(t, "UNKNOWN_ACTION", res.Error)
}
