package helpers

import (
	"net/http"
	"strconv"

	"florist-api-io/api/pkg/catalog"
	"florist-api-io/api/pkg/models"
	"florist-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const MAX_PAGE_SIZE = 100

// GetPaginationArgs extracts pagination parameters from HTTP request
func GetPaginationArgs(c *gin.Context) util.PaginationArgs {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "24"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	sort := c.DefaultQuery("sort", "")

	if limit < 1 || limit > MAX_PAGE_SIZE {
		limit = MAX_PAGE_SIZE
	}
	if skip < 0 {
		skip = 0
	}

	return util.PaginationArgs{
		Limit: limit,
		Skip:  skip,
		Sort:  sort,
	}
}

// GetCatalogCriteria builds filter criteria from the query string. Set
// parameters may be repeated.
func GetCatalogCriteria(c *gin.Context) (catalog.Criteria, error) {
	criteria := catalog.Criteria{
		Search:     c.Query("search"),
		Categories: c.QueryArray("category"),
		Colors:     c.QueryArray("color"),
		Occasions:  c.QueryArray("occasion"),
		Sort:       catalog.ParseSortOrder(c.Query("sort")),
	}

	var err error
	if criteria.MinPrice, err = queryDecimal(c, "min_price"); err != nil {
		return catalog.Criteria{}, err
	}
	if criteria.MaxPrice, err = queryDecimal(c, "max_price"); err != nil {
		return catalog.Criteria{}, err
	}
	return criteria, nil
}

func queryDecimal(c *gin.Context, key string) (*decimal.Decimal, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, errors.Errorf("%s must be a number, got %q", key, v)
	}
	return &d, nil
}

// GetCartCategory parses the :category path param, answering 400 when it is
// not a cart collection.
func GetCartCategory(c *gin.Context) (models.CartCategory, error) {
	category, err := models.ParseCartCategory(c.Param("category"))
	if err != nil {
		util.HandleError(c, http.StatusBadRequest, err)
		return "", err
	}
	return category, nil
}

// GetProductKind parses the :kind path param, answering 400 when unknown.
func GetProductKind(c *gin.Context) (models.ProductKind, error) {
	kind, err := models.ParseProductKind(c.Param("kind"))
	if err != nil {
		util.HandleError(c, http.StatusBadRequest, err)
		return "", err
	}
	return kind, nil
}

// GetIntParam parses an integer path param, answering 400 when malformed.
func GetIntParam(c *gin.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		err = errors.Errorf("invalid %s: %q", name, c.Param(name))
		util.HandleError(c, http.StatusBadRequest, err)
		return 0, err
	}
	return v, nil
}
