// Copyright (c) 2026 Plume. All rights reserved.

package account_test

import (
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumeblog/plume/internal/users/account"
)

/*
TestRegister_MailLength exercises the 30-character mail bound at the HTTP
boundary: a mail at the limit registers, one past it is a validation error.
*/
func TestRegister_MailLength(t *testing.T) {
	newRouter := func() *account.Handler {
		return account.NewHandler(account.NewService(newFakeRepository(), slog.Default()))
	}

	t.Run("mail_at_the_limit_registers", func(t *testing.T) {
		// 20 + len("@plume.app") = 30 characters exactly.
		mail := strings.Repeat("a", 20) + "@plume.app"
		body := `{"pseudo": "ada", "mail": "` + mail + `", "password": "secret-password"}`

		request := httptest.NewRequest("POST", "/", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		newRouter().Routes().ServeHTTP(recorder, request)

		require.Equal(t, 201, recorder.Code, recorder.Body.String())
		assert.Contains(t, recorder.Body.String(), "User successfully created")
	})

	t.Run("mail_past_the_limit_is_rejected", func(t *testing.T) {
		// 30 + len("@plume.app") = 40 characters.
		mail := strings.Repeat("a", 30) + "@plume.app"
		body := `{"pseudo": "ada", "mail": "` + mail + `", "password": "secret-password"}`

		request := httptest.NewRequest("POST", "/", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		newRouter().Routes().ServeHTTP(recorder, request)

		require.Equal(t, 400, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "VALIDATION_FAILED")
		assert.Contains(t, recorder.Body.String(), "mail")
	})
}
