package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// performRequest runs handler against a JSON request, optionally as an authenticated user
func performRequest(t *testing.T, handler gin.HandlerFunc, method, path string, body interface{}, userID string) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if userID != "" {
		c.Set("user_id", userID)
	}

	handler(c)
	// bodiless responses are only flushed to the recorder by the engine
	c.Writer.WriteHeaderNow()
	return w
}

// assertResponse checks the status code and every expected key of the JSON body
func assertResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedBody map[string]interface{}) {
	t.Helper()

	if w.Code != expectedStatus {
		t.Errorf("expected status %d, got %d (body %s)", expectedStatus, w.Code, w.Body.String())
	}
	if expectedBody == nil {
		return
	}

	var responseBody map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &responseBody); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}

	for key, expectedValue := range expectedBody {
		if actualValue, exists := responseBody[key]; !exists {
			t.Errorf("expected key %s not found in response", key)
		} else {
			validateValue(t, key, expectedValue, actualValue)
		}
	}
}

// validateValue compares expected values against a decoded JSON body, recursing into maps
func validateValue(t *testing.T, key string, expected, actual interface{}) {
	t.Helper()

	expectedMap, expectedIsMap := expected.(map[string]interface{})
	actualMap, actualIsMap := actual.(map[string]interface{})

	if expectedIsMap && actualIsMap {
		for nestedKey, nestedExpected := range expectedMap {
			if nestedActual, exists := actualMap[nestedKey]; !exists {
				t.Errorf("expected key %s.%s not found in response", key, nestedKey)
			} else {
				validateValue(t, key+"."+nestedKey, nestedExpected, nestedActual)
			}
		}
	} else if expected != actual {
		t.Errorf("for key %s, expected %v, got %v", key, expected, actual)
	}
}

// containsKey reports whether the "data" object of a JSON body has key
func containsKey(t *testing.T, body []byte, key string) bool {
	t.Helper()

	var decoded struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}
	_, ok := decoded.Data[key]
	return ok
}
