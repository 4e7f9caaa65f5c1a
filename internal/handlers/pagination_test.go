package handlers

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lenzooadmin/internal/lenzoo"
)

func pagedNumbers(pages [][]int) (lister[int], *int) {
	calls := 0
	return func(_ context.Context, p lenzoo.ListParams) (lenzoo.Page[int], error) {
		calls++
		if p.Page > len(pages) {
			return lenzoo.Page[int]{TotalPages: len(pages)}, nil
		}
		return lenzoo.Page[int]{Items: pages[p.Page-1], Page: p.Page, TotalPages: len(pages)}, nil
	}, &calls
}

func TestFindInListWalksPages(t *testing.T) {
	list, calls := pagedNumbers([][]int{{1, 2}, {3, 4}, {5}})

	got, found, err := findInList(context.Background(), list, func(n int) bool { return n == 4 })
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 4, got)
	assert.Equal(t, 2, *calls)
}

func TestFindInListStopsAtLastPage(t *testing.T) {
	list, calls := pagedNumbers([][]int{{1}, {2}})

	_, found, err := findInList(context.Background(), list, func(n int) bool { return n == 9 })
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 2, *calls)
}

func TestFindInListReturnsError(t *testing.T) {
	boom := errors.New("boom")
	list := lister[int](func(context.Context, lenzoo.ListParams) (lenzoo.Page[int], error) {
		return lenzoo.Page[int]{}, boom
	})

	_, _, err := findInList(context.Background(), list, func(int) bool { return true })
	assert.ErrorIs(t, err, boom)
}

func TestCollectAll(t *testing.T) {
	list, _ := pagedNumbers([][]int{{1, 2}, {3}})

	all, err := collectAll(context.Background(), list)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, all)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", excerpt("  short ", 10))
	assert.Equal(t, "abcd…", excerpt("abcdefgh", 4))
	assert.Equal(t, "report.pdf", documentName("uploads/research/report.pdf"))
}

func TestSearchKeySeparatesViews(t *testing.T) {
	gin.SetMode(gin.TestMode)
	d := &Deps{PageSize: 10}
	query := func(target string) (*gin.Context, listQuery) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", target, nil)
		return c, d.listParams(c)
	}

	c1, q1 := query("/products?view=tab-a&search=avi")
	c2, q2 := query("/products?view=tab-a&search=aviator")
	c3, q3 := query("/products?view=tab-b&search=avi")
	assert.Equal(t, d.searchKey(c1, "products", q1), d.searchKey(c2, "products", q2))
	assert.NotEqual(t, d.searchKey(c1, "products", q1), d.searchKey(c3, "products", q3))

	// a fresh load gets its own view
	_, fresh1 := query("/products")
	_, fresh2 := query("/products")
	assert.NotEmpty(t, fresh1.View)
	assert.NotEqual(t, fresh1.View, fresh2.View)
}
