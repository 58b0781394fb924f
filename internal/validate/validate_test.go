package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	d, ok := Price(" 4999 ")
	assert.True(t, ok)
	assert.Equal(t, "4999", d.String())

	d, ok = Price("12.50")
	assert.True(t, ok)
	assert.Equal(t, "12.5", d.String())

	for _, bad := range []string{"", "abc", "-1", "1e"} {
		_, ok := Price(bad)
		assert.False(t, ok, bad)
	}
}

func TestImagesDropsBlanks(t *testing.T) {
	assert.Equal(t, []string{"https://img/1.jpg", "https://img/2.jpg"},
		Images([]string{"", "https://img/1.jpg", "   ", " https://img/2.jpg"}))
	assert.Empty(t, Images(nil))
}

func TestEmailAndTitle(t *testing.T) {
	_, ok := Email("customer@example.com")
	assert.True(t, ok)
	_, ok = Email("not-an-email")
	assert.False(t, ok)

	title, ok := Title("  Teak Chair ")
	assert.True(t, ok)
	assert.Equal(t, "Teak Chair", title)
	_, ok = Title("   ")
	assert.False(t, ok)
}

func TestCurrency(t *testing.T) {
	c, ok := Currency("")
	assert.True(t, ok)
	assert.Equal(t, "inr", c)
	c, ok = Currency("USD")
	assert.True(t, ok)
	assert.Equal(t, "usd", c)
	_, ok = Currency("rupees")
	assert.False(t, ok)
}

func TestQtyAndPassword(t *testing.T) {
	_, ok := Qty(0)
	assert.False(t, ok)
	_, ok = Qty(3)
	assert.True(t, ok)
	assert.True(t, Password("woodenmart@1"))
	assert.False(t, Password(""))
}
