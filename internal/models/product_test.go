package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductDecodesNumericAndStringIDs(t *testing.T) {
	var products []Product
	body := `[{"id": 7, "name": "Laptop", "price": 10.5, "inventory": 3},
	          {"_id": "abc", "name": "Mouse", "price": null, "inventory": null}]`
	require.NoError(t, json.Unmarshal([]byte(body), &products))
	require.Len(t, products, 2)

	assert.Equal(t, ProductID("7"), products[0].Key())
	require.NotNil(t, products[0].Price)
	assert.Equal(t, 10.5, *products[0].Price)
	require.NotNil(t, products[0].Inventory)
	assert.Equal(t, 3, *products[0].Inventory)

	assert.Equal(t, ProductID("abc"), products[1].Key())
	assert.Nil(t, products[1].Price)
	assert.Nil(t, products[1].Inventory)
}

func TestProductKeyPrefersID(t *testing.T) {
	p := Product{ID: "1", LegacyID: "2"}
	assert.Equal(t, ProductID("1"), p.Key())
	assert.Equal(t, ProductID(""), Product{}.Key())
}

func TestProductIDMarshal(t *testing.T) {
	out, err := json.Marshal(PurchaseRequest{ID: "12", Amount: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 12, "amount": 2}`, string(out))

	out, err = json.Marshal(PurchaseRequest{ID: "x-1", Amount: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "x-1", "amount": 1}`, string(out))

	// integer ids with leading zeros or a sign go out as plain numbers
	for _, id := range []ProductID{"007", "+7", "0007"} {
		out, err = json.Marshal(PurchaseRequest{ID: id, Amount: 1})
		require.NoError(t, err, id)
		assert.JSONEq(t, `{"id": 7, "amount": 1}`, string(out), id)
	}
	out, err = json.Marshal(PurchaseRequest{ID: "-3", Amount: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": -3, "amount": 1}`, string(out))
}

func TestProductIDCanonical(t *testing.T) {
	assert.Equal(t, ProductID("7"), ProductID("007").Canonical())
	assert.Equal(t, ProductID("1"), ProductID("+1").Canonical())
	assert.Equal(t, ProductID("12"), ProductID("12").Canonical())
	assert.Equal(t, ProductID("abc"), ProductID("abc").Canonical())
	assert.Equal(t, ProductID(""), ProductID("").Canonical())
}

func TestProductRequestSendsNullNumbers(t *testing.T) {
	out, err := json.Marshal(ProductRequest{Name: "Desk"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Desk","description":"","price":null,"inventory":null,"owner":"","category":""}`, string(out))
}
