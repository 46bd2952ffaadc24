package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromStatusMapsKnownStatuses(t *testing.T) {
	cases := []struct {
		status int
		want   string
	}{
		{http.StatusBadRequest, TypeBadRequest},
		{http.StatusNotFound, TypeNotFound},
		{http.StatusUnauthorized, TypeUnauthorized},
		{http.StatusConflict, TypeConflict},
		{http.StatusBadGateway, TypeBadGateway},
	}
	for _, tc := range cases {
		problem := FromStatus(tc.status, errors.New("boom"))
		require.Equal(t, tc.want, problem.Type, tc.want)
		require.Equal(t, tc.status, problem.Status, tc.want)
		require.Equal(t, "boom", problem.Detail, tc.want)
	}
}

func TestFromStatusDefaultsToInternal(t *testing.T) {
	problem := FromStatus(http.StatusTeapot, nil)
	require.Equal(t, TypeInternal, problem.Type)
	require.Equal(t, http.StatusInternalServerError, problem.Status)
	require.Empty(t, problem.Detail)
}
