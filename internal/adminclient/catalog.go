// internal/adminclient/catalog.go
package adminclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dalemusser/estatehub/internal/domain/models"
)

func subAreaPath(areaKey string, subAreaID int64) string {
	return url.PathEscape(areaKey) + "/" + strconv.FormatInt(subAreaID, 10)
}

// ListAreas returns every area in display order.
func (c *Client) ListAreas(ctx context.Context) ([]models.Area, error) {
	var out []models.Area
	_, err := c.do(ctx, http.MethodGet, "/areas", nil, nil, &out)
	return out, err
}

// ReorderAreas sends the complete ordered list of area keys.
func (c *Client) ReorderAreas(ctx context.Context, keys []string) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPut, "/areas/reorder", nil, map[string]any{"areaKeys": keys}, nil)
	return err
}

// ListSubAreas returns the sub-areas of one area in display order.
func (c *Client) ListSubAreas(ctx context.Context, areaKey string) ([]models.SubArea, error) {
	var out []models.SubArea
	_, err := c.do(ctx, http.MethodGet, "/areas/"+url.PathEscape(areaKey)+"/subareas", nil, nil, &out)
	return out, err
}

// ReorderSubAreas sends the complete ordered list of sub-area ids.
func (c *Client) ReorderSubAreas(ctx context.Context, areaKey string, ids []int64) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPut, "/areas/"+url.PathEscape(areaKey)+"/subareas/reorder", nil, map[string]any{"subAreas": ids}, nil)
	return err
}

// ListSocieties returns the societies of one sub-area in display order.
func (c *Client) ListSocieties(ctx context.Context, areaKey string, subAreaID int64) ([]models.Society, error) {
	var out []models.Society
	_, err := c.do(ctx, http.MethodGet, "/societies/"+subAreaPath(areaKey, subAreaID), nil, nil, &out)
	return out, err
}

// ReorderSocieties sends the complete ordered list of society names.
func (c *Client) ReorderSocieties(ctx context.Context, areaKey string, subAreaID int64, names []string) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPut, "/societies/"+subAreaPath(areaKey, subAreaID)+"/reorder", nil, map[string]any{"societies": names}, nil)
	return err
}

// ListProperties returns properties in display order, optionally limited
// to one area. Inactive listings are included, which needs a token.
func (c *Client) ListProperties(ctx context.Context, areaKey string) ([]models.Property, error) {
	q := url.Values{"includeInactive": {"true"}}
	if areaKey != "" {
		q.Set("areaKey", areaKey)
	}
	var out []models.Property
	_, err := c.do(ctx, http.MethodGet, "/properties", q, nil, &out)
	return out, err
}

// ReorderProperties sends an ordered list of property ids. With a non-empty
// areaKey the ranking applies within that area only.
func (c *Client) ReorderProperties(ctx context.Context, areaKey string, ids []string) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	body := map[string]any{"propertyIds": ids}
	if areaKey != "" {
		body["areaKey"] = areaKey
	}
	_, err := c.do(ctx, http.MethodPut, "/properties/reorder", nil, body, nil)
	return err
}

// ListSliderImages returns all slider images, inactive included.
func (c *Client) ListSliderImages(ctx context.Context) ([]models.SliderImage, error) {
	var out []models.SliderImage
	_, err := c.do(ctx, http.MethodGet, "/slider-images", url.Values{"includeInactive": {"true"}}, nil, &out)
	return out, err
}

// ReorderSliderImages sends the complete ordered list of slider image ids.
func (c *Client) ReorderSliderImages(ctx context.Context, ids []string) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPut, "/slider-images/reorder", nil, map[string]any{"imageIds": ids}, nil)
	return err
}

// AreasView returns an ordered view over all areas.
func (c *Client) AreasView() *OrderedView[models.Area, string] {
	return NewOrderedView(
		func(a models.Area) string { return a.Key },
		c.ListAreas,
		c.ReorderAreas,
	)
}

// SubAreasView returns an ordered view over one area's sub-areas.
func (c *Client) SubAreasView(areaKey string) *OrderedView[models.SubArea, int64] {
	return NewOrderedView(
		func(s models.SubArea) int64 { return s.ID },
		func(ctx context.Context) ([]models.SubArea, error) { return c.ListSubAreas(ctx, areaKey) },
		func(ctx context.Context, ids []int64) error { return c.ReorderSubAreas(ctx, areaKey, ids) },
	)
}

// SocietiesView returns an ordered view over one sub-area's societies.
func (c *Client) SocietiesView(areaKey string, subAreaID int64) *OrderedView[models.Society, string] {
	return NewOrderedView(
		func(s models.Society) string { return s.Name },
		func(ctx context.Context) ([]models.Society, error) { return c.ListSocieties(ctx, areaKey, subAreaID) },
		func(ctx context.Context, names []string) error { return c.ReorderSocieties(ctx, areaKey, subAreaID, names) },
	)
}

// PropertiesView returns an ordered view over properties, scoped to one
// area when areaKey is non-empty.
func (c *Client) PropertiesView(areaKey string) *OrderedView[models.Property, string] {
	return NewOrderedView(
		func(p models.Property) string { return p.ID.Hex() },
		func(ctx context.Context) ([]models.Property, error) { return c.ListProperties(ctx, areaKey) },
		func(ctx context.Context, ids []string) error { return c.ReorderProperties(ctx, areaKey, ids) },
	)
}

// SliderView returns an ordered view over the slider images.
func (c *Client) SliderView() *OrderedView[models.SliderImage, string] {
	return NewOrderedView(
		func(s models.SliderImage) string { return s.ID.Hex() },
		c.ListSliderImages,
		c.ReorderSliderImages,
	)
}
