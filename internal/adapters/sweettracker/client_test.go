package sweettracker

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bnema/parceltrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trackingFixture = `{
  "complete": false,
  "invoiceNo": "1234567890",
  "level": 5,
  "itemName": "books",
  "receiverName": "Kim",
  "senderName": "Shop",
  "estimate": null,
  "trackingDetails": [
    {"kind": "집화처리", "level": 2, "manName": "", "telno": "02-000", "time": 1700000000000, "timeString": "2023-11-15 07:13:20", "where": "Seoul", "code": null, "remark": null},
    {"kind": "배송출발", "level": 5, "manName": "Lee", "telno": "010-000", "time": 1700086400000, "timeString": "2023-11-16 07:13:20", "where": "Busan", "code": "05", "remark": "door"}
  ],
  "firstDetail": {"kind": "집화처리", "level": 2, "time": 1700000000000, "timeString": "2023-11-15 07:13:20", "where": "Seoul"},
  "lastDetail": {"kind": "배송출발", "level": 5, "time": 1700086400000, "timeString": "2023-11-16 07:13:20", "where": "Busan"},
  "lastStateDetail": {"kind": "배송출발", "level": 5, "time": 1700086400000, "timeString": "2023-11-16 07:13:20", "where": "Busan"}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL+"/api/v1/", "test-key", WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := NewClient("", " ")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestFetchAllDecodesCompanyList(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/companylist", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("t_key"))
		_, _ = fmt.Fprint(w, `{"Company":[{"International":"false","Code":"04","Name":"CJ대한통운"},{"International":"true","Code":"12","Name":"EMS"}]}`)
	})

	carriers, err := client.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Carrier{
		{International: false, Code: "04", Name: "CJ대한통운"},
		{International: true, Code: "12", Name: "EMS"},
	}, carriers)
}

func TestFetchAllEmptyDirectoryIsValid(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"Company":[]}`)
	})

	carriers, err := client.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, carriers)
}

func TestFetchAllServerFailureIsUnavailable(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FetchAll(context.Background())
	var unavailable *domain.UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "fetch carriers", unavailable.Op)
}

func TestFetchAllTransportFailureIsUnavailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client, err := NewClient(baseURL, "test-key")
	require.NoError(t, err)

	_, err = client.FetchAll(context.Background())
	var unavailable *domain.UnavailableError
	assert.ErrorAs(t, err, &unavailable)
}

func TestQueryDecodesTrackingInfo(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/trackingInfo", r.URL.Path)
		assert.Equal(t, "04", r.URL.Query().Get("t_code"))
		assert.Equal(t, "1234567890", r.URL.Query().Get("t_invoice"))
		assert.Equal(t, "test-key", r.URL.Query().Get("t_key"))
		_, _ = fmt.Fprint(w, trackingFixture)
	})

	result, err := client.Query(context.Background(), "04", "1234567890")
	require.NoError(t, err)

	assert.Equal(t, "1234567890", result.InvoiceNo)
	assert.Equal(t, 5, result.CurrentLevel)
	assert.False(t, result.Complete)
	assert.Equal(t, "books", result.ItemName)
	assert.Empty(t, result.Estimate)
	require.Len(t, result.Events, 2)
	assert.Equal(t, "Seoul", result.Events[0].Location)
	assert.Nil(t, result.Events[0].StatusCode)
	require.NotNil(t, result.Events[1].Remark)
	assert.Equal(t, "door", *result.Events[1].Remark)
	assert.Equal(t, "010-000", result.Events[1].ContactPhone)
	assert.Equal(t, int64(1700086400000), result.Events[1].TimestampRaw)
	require.NotNil(t, result.FirstEvent)
	assert.Equal(t, "Seoul", result.FirstEvent.Location)
	require.NotNil(t, result.LastEvent)
	assert.Equal(t, "Busan", result.LastEvent.Location)
	assert.True(t, result.HasData())
}

func TestQueryNullFirstDetailHasNoData(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"invoiceNo":"1","level":1,"trackingDetails":[],"firstDetail":null,"lastDetail":null}`)
	})

	result, err := client.Query(context.Background(), "04", "1")
	require.NoError(t, err)
	assert.False(t, result.HasData())
}

func TestQueryInvalidRequestCodeIsRequestError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"status":false,"code":"104","msg":"운송장 번호를 확인해주세요."}`)
	})

	_, err := client.Query(context.Background(), "04", "1")
	var requestErr *domain.RequestError
	require.ErrorAs(t, err, &requestErr)
	assert.Equal(t, "104", requestErr.Code)
	assert.Equal(t, "운송장 번호를 확인해주세요.", requestErr.Message)
}

func TestQueryUnknownErrorCodeIsReturnedAsResult(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"status":false,"code":"106","msg":"something else"}`)
	})

	result, err := client.Query(context.Background(), "04", "1")
	require.NoError(t, err)
	assert.Equal(t, "106", result.ErrorCode)
	assert.False(t, result.HasData())
}

func TestQueryClientErrorStatusIsRequestError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = fmt.Fprint(w, `{"msg":"invalid key"}`)
	})

	_, err := client.Query(context.Background(), "04", "1")
	var requestErr *domain.RequestError
	require.ErrorAs(t, err, &requestErr)
	assert.Equal(t, "401", requestErr.Code)
	assert.Equal(t, "invalid key", requestErr.Message)
}

func TestQueryUndecodableBodyIsUnavailable(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `<html>maintenance</html>`)
	})

	_, err := client.Query(context.Background(), "04", "1")
	var unavailable *domain.UnavailableError
	assert.ErrorAs(t, err, &unavailable)
}

func TestQueryValidatesRequestBeforeSending(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})

	tests := []struct {
		name    string
		code    string
		invoice string
		want    string
	}{
		{name: "missing carrier", code: "", invoice: "1", want: "carrier code is required"},
		{name: "missing invoice", code: "04", invoice: " ", want: "invoice number is required"},
		{name: "non ascii invoice", code: "04", invoice: "번호", want: "invoice number is invalid"},
	}

	for _, tc := range tests {
		_, err := client.Query(context.Background(), tc.code, tc.invoice)
		var requestErr *domain.RequestError
		require.ErrorAs(t, err, &requestErr, tc.name)
		assert.Equal(t, tc.want, requestErr.Message, tc.name)
	}
}
