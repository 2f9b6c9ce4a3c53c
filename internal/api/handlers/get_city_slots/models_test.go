package get_city_slots

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	q := url.Values{}
	q.Set("dateFrom", "2024-06-10")
	q.Set("maxPrice", "450.5")
	q.Set("onlyFree", "true")
	q.Set("sort", "price_asc")

	req, err := ToServiceRequest(3, q)
	require.NoError(t, err)

	assert.Equal(t, int64(3), req.CityID)
	require.NotNil(t, req.DateFrom)
	assert.Equal(t, "2024-06-10", req.DateFrom.Format("2006-01-02"))
	assert.Nil(t, req.DateTo)
	assert.Nil(t, req.MinPrice)
	assert.Equal(t, 450.5, *req.MaxPrice)
	assert.True(t, req.OnlyFree)
	assert.Equal(t, "price_asc", req.Sort)
}

func TestToServiceRequest_Invalid(t *testing.T) {
	for _, raw := range []string{"dateTo=10.06.2024", "minPrice=cheap", "onlyFree=maybe"} {
		q, err := url.ParseQuery(raw)
		require.NoError(t, err)

		_, err = ToServiceRequest(1, q)
		assert.Error(t, err, raw)
	}
}
