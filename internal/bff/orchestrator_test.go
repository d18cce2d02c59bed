package bff

import (
	"context"
	"net/http"
	"testing"

	"commerce-mesh/internal/downstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCaller struct {
	results map[string]downstream.Result
	calls   []string
}

func (f *fakeCaller) Call(_ context.Context, _, url string, _ interface{}) downstream.Result {
	f.calls = append(f.calls, url)
	if res, ok := f.results[url]; ok {
		return res
	}
	return downstream.Result{StatusCode: http.StatusNotFound, Body: []byte(`{}`)}
}

const (
	productURL = "http://product"
	orderURL   = "http://order"
)

func TestGetOrderSummaryMergesBothCalls(t *testing.T) {
	caller := &fakeCaller{results: map[string]downstream.Result{
		productURL + "/products/p1": {
			StatusCode: http.StatusOK,
			Body:       []byte(`{"id":"p1","name":"Widget","price":9.5,"qty":12}`),
		},
		orderURL + "/orders/product/p1": {
			StatusCode: http.StatusOK,
			Body:       []byte(`[{"id":"o1","productId":"p1","qty":2},{"id":"o2","productId":"p1","qty":1}]`),
		},
	}}

	orch := NewOrchestrator(caller, productURL, orderURL)
	summary, fail := orch.GetOrderSummary(context.Background(), "p1")

	require.Nil(t, fail)
	assert.Equal(t, "p1", summary.Product.ID)
	assert.Equal(t, "Widget", summary.Product.Name)
	assert.Equal(t, 9.5, summary.Product.Price)
	assert.Equal(t, 12, summary.Product.CurrentStock)
	assert.Len(t, summary.Orders, 2)
	assert.Equal(t, 2, summary.TotalOrders)
	assert.Equal(t, "o1", summary.Orders[0].ID)
	assert.Equal(t, "o2", summary.Orders[1].ID)
}

func TestGetOrderSummaryOrdersFailureIsAllOrNothing(t *testing.T) {
	caller := &fakeCaller{results: map[string]downstream.Result{
		productURL + "/products/p1": {
			StatusCode: http.StatusOK,
			Body:       []byte(`{"id":"p1","name":"Widget","price":9.5,"qty":12}`),
		},
		orderURL + "/orders/product/p1": {
			StatusCode: http.StatusServiceUnavailable,
			Body:       []byte(`{"error":"orders down"}`),
		},
	}}

	orch := NewOrchestrator(caller, productURL, orderURL)
	summary, fail := orch.GetOrderSummary(context.Background(), "p1")

	assert.Nil(t, summary)
	require.NotNil(t, fail)
	assert.Equal(t, http.StatusServiceUnavailable, fail.StatusCode)
	assert.JSONEq(t, `{"error":"orders down"}`, string(fail.Body))
}

func TestGetOrderSummaryProductFailureShortCircuits(t *testing.T) {
	caller := &fakeCaller{results: map[string]downstream.Result{
		productURL + "/products/p1": {
			StatusCode: http.StatusNotFound,
			Body:       []byte(`{"error":"Product not found"}`),
		},
	}}

	orch := NewOrchestrator(caller, productURL, orderURL)
	summary, fail := orch.GetOrderSummary(context.Background(), "p1")

	assert.Nil(t, summary)
	require.NotNil(t, fail)
	assert.Equal(t, http.StatusNotFound, fail.StatusCode)

	// The orders call is never issued once the product call failed.
	assert.Equal(t, []string{productURL + "/products/p1"}, caller.calls)
}

func TestGetOrderSummaryEmptyOrdersIsSuccess(t *testing.T) {
	caller := &fakeCaller{results: map[string]downstream.Result{
		productURL + "/products/p1": {
			StatusCode: http.StatusOK,
			Body:       []byte(`{"id":"p1","name":"Widget","price":9.5,"qty":12}`),
		},
		orderURL + "/orders/product/p1": {
			StatusCode: http.StatusOK,
			Body:       []byte(`[]`),
		},
	}}

	orch := NewOrchestrator(caller, productURL, orderURL)
	summary, fail := orch.GetOrderSummary(context.Background(), "p1")

	require.Nil(t, fail)
	assert.Equal(t, 0, summary.TotalOrders)
	assert.NotNil(t, summary.Orders)
	assert.Empty(t, summary.Orders)
}

func TestGetOrderSummaryTransportFailure(t *testing.T) {
	caller := &fakeCaller{results: map[string]downstream.Result{
		productURL + "/products/p1": {
			StatusCode: http.StatusInternalServerError,
			Err:        context.DeadlineExceeded,
		},
	}}

	orch := NewOrchestrator(caller, productURL, orderURL)
	summary, fail := orch.GetOrderSummary(context.Background(), "p1")

	assert.Nil(t, summary)
	require.NotNil(t, fail)
	assert.Equal(t, http.StatusInternalServerError, fail.StatusCode)
	assert.Empty(t, fail.Body)
}

func TestProxyOperationsMirrorDownstream(t *testing.T) {
	caller := &fakeCaller{results: map[string]downstream.Result{
		productURL + "/products/p1": {StatusCode: http.StatusOK, Body: []byte(`{"id":"p1"}`)},
		productURL + "/products":    {StatusCode: http.StatusCreated, Body: []byte(`{"id":"p2"}`)},
		orderURL + "/orders":        {StatusCode: http.StatusBadRequest, Body: []byte(`{"error":"product not found"}`)},
	}}

	orch := NewOrchestrator(caller, productURL, orderURL)

	res := orch.GetProduct(context.Background(), "p1")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res = orch.CreateProduct(context.Background(), []byte(`{"name":"Gadget"}`))
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	res = orch.CreateOrder(context.Background(), []byte(`{"productId":"missing"}`))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.JSONEq(t, `{"error":"product not found"}`, string(res.Body))
}
