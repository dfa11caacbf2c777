package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
)

func TestUnwrapEnvelope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr string
	}{
		{name: "bare array", body: ` [1,2] `, want: `[1,2]`},
		{name: "bare object without envelope keys", body: `{"id":1}`, want: `{"id":1}`},
		{name: "success envelope", body: `{"status":"success","data":{"id":1}}`, want: `{"id":1}`},
		{name: "error envelope", body: `{"status":"error","error":{"code":"X","message":"boom"}}`, wantErr: "api error X: boom"},
		{name: "error envelope without detail", body: `{"status":"error","data":null,"message":"bad"}`, wantErr: "api error: bad"},
		{name: "empty body", body: "   ", wantErr: "empty response body"},
		{name: "invalid object", body: `{"data":`, wantErr: "decoding response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := unwrapEnvelope([]byte(tt.body))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestDecodeTasks_Shapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want []task.Task
	}{
		{name: "null", body: `null`, want: []task.Task{}},
		{name: "enveloped null", body: `{"status":"success","data":null}`, want: []task.Task{}},
		{name: "empty array", body: `[]`, want: []task.Task{}},
		{
			name: "single object",
			body: `{"id":"t1","name":"One","status":"COMPLETED","progress":100,"startDate":"2024-01-01","endDate":"2024-01-01"}`,
			want: []task.Task{{ID: "t1", Name: "One", Status: task.StatusCompleted, Progress: task.IntPtr(100), StartDate: "2024-01-01", EndDate: "2024-01-01"}},
		},
		{
			name: "numeric id and null dates",
			body: `[{"id":17,"name":"N","status":"NOT_STARTED","progress":null,"startDate":null,"endDate":null}]`,
			want: []task.Task{{ID: "17", Name: "N", Status: task.StatusNotStarted}},
		},
		{
			name: "unknown status kept verbatim",
			body: `[{"id":1,"name":"W","status":"WAITING"}]`,
			want: []task.Task{{ID: "1", Name: "W", Status: task.TaskStatus("WAITING")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := decodeTasks([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlexDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "string", raw: `"2024-02-29"`, want: "2024-02-29"},
		{name: "array", raw: `[2024,2,9]`, want: "2024-02-09"},
		{name: "short array kept raw", raw: `[2024,2]`, want: "[2024,2]"},
		{name: "number kept raw", raw: `20240101`, want: "20240101"},
		{name: "null", raw: `null`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var d flexDate
			require.NoError(t, d.UnmarshalJSON([]byte(tt.raw)))
			assert.Equal(t, tt.want, string(d))
		})
	}
}

func TestDecodeProject_NumericID(t *testing.T) {
	t.Parallel()

	p, err := decodeProject([]byte(`{"status":"success","data":{"id":12,"name":"P","startDate":[2024,3,1]}}`))
	require.NoError(t, err)
	assert.Equal(t, task.Project{ID: "12", Name: "P", StartDate: "2024-03-01"}, p)
}
