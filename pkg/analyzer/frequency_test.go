package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrequencyTable_MaxFirstInsertionWinsTies(t *testing.T) {
	req := require.New(t)

	ft := NewFrequencyTable()
	ft.Add("ciao")
	ft.Add("bene")
	ft.Add("bene")
	ft.Add("ciao")

	word, count := ft.Max()
	req.Equal("ciao", word)
	req.Equal(2, count)
}

func TestFrequencyTable_MaxStrictlyGreater(t *testing.T) {
	req := require.New(t)

	ft := NewFrequencyTable()
	ft.Add("ciao")
	ft.AddN("bene", 3)
	ft.AddN("ciao", 2)

	word, count := ft.Max()
	req.Equal("bene", word)
	req.Equal(3, count)
	req.Equal(3, ft.Count("ciao"))
	req.Equal(0, ft.Count("mai"))
	req.Equal(2, ft.Len())
}

func TestFrequencyTable_Empty(t *testing.T) {
	key, count := NewFrequencyTable().Max()
	require.Equal(t, "", key)
	require.Equal(t, 0, count)
}

func TestFrequencyTable_Top(t *testing.T) {
	req := require.New(t)

	ft := NewFrequencyTable()
	for _, w := range []string{"uno", "due", "tre", "due", "tre", "quattro"} {
		ft.Add(w)
	}

	req.Equal([]Entry{{Key: "due", Count: 2}, {Key: "tre", Count: 2}}, ft.Top(2))
	req.Len(ft.Top(-1), 4)
	req.Equal("quattro", ft.Top(10)[3].Key)
}
