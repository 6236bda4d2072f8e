package programs

import (
	"testing"

	"github.com/krehermann/bytevm/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	tests := []struct {
		name     string
		want     vm.Value
		returned bool
		wantErr  error
	}{
		{name: "add", want: 5, returned: true},
		{name: "arith", want: 4, returned: true},
		{name: "count_to_ten"},
		{name: "equal", want: 1, returned: true},
		{name: "leftover"},
		{name: "missing_var", wantErr: vm.ErrUndefinedVariable},
		{name: "overflow", want: 0, returned: true},
		{name: "sum_to_five", want: 15, returned: true},
	}
	assert.Len(t, Names(), len(tests))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Get(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.name, e.Name)
			assert.NotEmpty(t, e.Description)

			got, err := vm.NewInterpreter().Execute(e.Program)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.returned, got.Returned)
			assert.Equal(t, tt.want, got.Value)
		})
	}
}

func TestCountToTenLeavesCounter(t *testing.T) {
	e, err := Get("count_to_ten")
	require.NoError(t, err)

	in := vm.NewInterpreter()
	_, err = in.Execute(e.Program)
	require.NoError(t, err)

	i, err := in.Variables().Get("i")
	require.NoError(t, err)
	assert.Equal(t, vm.Value(10), i)
	assert.True(t, in.Stack().Empty())
}

func TestSumTo(t *testing.T) {
	for _, n := range []vm.Value{0, 1, 2, 10, 100} {
		got, err := vm.NewInterpreter().Execute(SumTo(n))
		require.NoError(t, err)
		assert.Equal(t, n*(n+1)/2, got.Value, "n=%d", n)
	}
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("nope")
	assert.Error(t, err)
}

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, len(Names()))
	for i, name := range Names() {
		assert.Equal(t, name, all[i].Name)
	}
}
