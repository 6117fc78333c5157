package form

import (
	"errors"
	"testing"

	"github.com/rogerio-castellano/product-console/internal/models"
	"github.com/rogerio-castellano/product-console/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestUpdateFormData(t *testing.T) {
	f := Values{}
	UpdateFormData(f, models.Product{
		LegacyID:    "42",
		Name:        "Laptop",
		Description: "des1",
		Price:       ptr(10.5),
		Inventory:   ptr(3),
		Owner:       "owner1",
		Category:    "A",
	})

	assert.Equal(t, Values{
		FieldID:          "42",
		FieldName:        "Laptop",
		FieldDescription: "des1",
		FieldPrice:       "10.5",
		FieldInventory:   "3",
		FieldOwner:       "owner1",
		FieldCategory:    "A",
	}, f)
}

func TestUpdateFormDataNullNumbers(t *testing.T) {
	f := Values{FieldPrice: "9", FieldInventory: "9"}
	UpdateFormData(f, models.Product{ID: "1", Name: "x"})
	assert.Equal(t, "", f.Value(FieldPrice))
	assert.Equal(t, "", f.Value(FieldInventory))
}

func TestClearFormDataKeepsID(t *testing.T) {
	f := Values{FieldID: "5", FieldName: "n", FieldPrice: "1", FieldAmount: "2"}
	ClearFormData(f)
	assert.Equal(t, "5", f.Value(FieldID))
	assert.Equal(t, "", f.Value(FieldName))
	assert.Equal(t, "", f.Value(FieldPrice))
	assert.Equal(t, "2", f.Value(FieldAmount))
}

func TestReadFilter(t *testing.T) {
	f := Values{FieldName: "shoe", FieldPrice: "10", FieldDescription: "ignored"}
	assert.Equal(t, query.FilterInput{Name: "shoe", Price: "10"}, ReadFilter(f))
}

func TestReadProduct(t *testing.T) {
	f := Values{FieldName: "Desk", FieldPrice: "99.9", FieldInventory: "4", FieldOwner: "o", FieldCategory: "c"}
	req, err := ReadProduct(f)
	require.NoError(t, err)
	assert.Equal(t, "Desk", req.Name)
	require.NotNil(t, req.Price)
	assert.Equal(t, 99.9, *req.Price)
	require.NotNil(t, req.Inventory)
	assert.Equal(t, 4, *req.Inventory)

	req, err = ReadProduct(Values{FieldName: "Desk"})
	require.NoError(t, err)
	assert.Nil(t, req.Price)
	assert.Nil(t, req.Inventory)
}

func TestReadProductRejectsBadNumbers(t *testing.T) {
	_, err := ReadProduct(Values{FieldPrice: "cheap"})
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, FieldPrice, fe.Field)
	assert.Equal(t, "price must be a number", err.Error())

	for _, bad := range []string{"NaN", "nan", "Inf", "-Inf", "+infinity", "1e999"} {
		_, err = ReadProduct(Values{FieldPrice: bad})
		require.True(t, errors.As(err, &fe), "price %q", bad)
		assert.Equal(t, "price must be a number", err.Error(), "price %q", bad)
	}

	_, err = ReadProduct(Values{FieldInventory: "1.5"})
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, FieldInventory, fe.Field)
}

func TestReadAmount(t *testing.T) {
	n, err := ReadAmount(Values{FieldAmount: "3"})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, bad := range []string{"", "0", "-1", "two"} {
		_, err := ReadAmount(Values{FieldAmount: bad})
		assert.Error(t, err, "amount %q", bad)
	}
}
