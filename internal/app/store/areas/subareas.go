package areastore

import (
	"context"
	"strconv"
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/ordering"
	"github.com/dalemusser/estatehub/internal/domain/models"
)

// newSubAreaID returns a clock-based id not yet used in a.
func newSubAreaID(a *models.Area, now time.Time) int64 {
	id := now.UnixMilli()
	for a.FindSubArea(id) >= 0 {
		id++
	}
	return id
}

func subAreaKey(s *models.SubArea) string { return strconv.FormatInt(s.ID, 10) }

func findSubArea(a *models.Area, id int64) (*models.SubArea, error) {
	i := a.FindSubArea(id)
	if i < 0 {
		return nil, apperr.NotFound("sub-area")
	}
	return &a.SubAreas[i], nil
}

// AddSubArea appends sa to the area (or places it at *order) and returns it
// with its assigned id.
func (s *Store) AddSubArea(ctx context.Context, key string, sa models.SubArea, order *int) (models.SubArea, error) {
	var added models.SubArea
	_, err := s.Mutate(ctx, key, func(a *models.Area) error {
		if sa.ID == 0 {
			sa.ID = newSubAreaID(a, time.Now())
		}
		if order != nil {
			sa.Order = *order
		} else {
			sa.Order = ordering.Next(a.SubAreas, func(x *models.SubArea) int { return x.Order })
		}
		if sa.Societies == nil {
			sa.Societies = []models.Society{}
		}
		a.SubAreas = append(a.SubAreas, sa)
		added = sa
		return nil
	})
	if err != nil {
		return models.SubArea{}, err
	}
	return added, nil
}

// UpdateSubArea applies fn to the sub-area. fn must not change the id.
func (s *Store) UpdateSubArea(ctx context.Context, key string, id int64, fn func(sa *models.SubArea)) (models.SubArea, error) {
	var updated models.SubArea
	_, err := s.Mutate(ctx, key, func(a *models.Area) error {
		sa, err := findSubArea(a, id)
		if err != nil {
			return err
		}
		fn(sa)
		sa.ID = id
		updated = *sa
		return nil
	})
	if err != nil {
		return models.SubArea{}, err
	}
	return updated, nil
}

// DeleteSubArea removes the sub-area and its societies.
func (s *Store) DeleteSubArea(ctx context.Context, key string, id int64) error {
	_, err := s.Mutate(ctx, key, func(a *models.Area) error {
		i := a.FindSubArea(id)
		if i < 0 {
			return apperr.NotFound("sub-area")
		}
		a.SubAreas = append(a.SubAreas[:i], a.SubAreas[i+1:]...)
		return nil
	})
	return err
}

// ReorderSubAreas sets order := index for the sub-area ids in plan. Sub-areas
// not listed follow the listed ones in their previous sequence.
func (s *Store) ReorderSubAreas(ctx context.Context, key string, plan []ordering.Assignment) (models.Area, error) {
	return s.Mutate(ctx, key, func(a *models.Area) error {
		out, err := ordering.Apply("sub-area ids", a.SubAreas, plan, subAreaKey,
			func(x *models.SubArea, o int) { x.Order = o })
		if err != nil {
			return err
		}
		a.SubAreas = out
		return nil
	})
}

// AddSociety appends soc to the sub-area (or places it at *order).
func (s *Store) AddSociety(ctx context.Context, key string, subAreaID int64, soc models.Society, order *int) (models.Society, error) {
	_, err := s.Mutate(ctx, key, func(a *models.Area) error {
		sa, err := findSubArea(a, subAreaID)
		if err != nil {
			return err
		}
		if order != nil {
			soc.Order = *order
		} else {
			soc.Order = ordering.Next(sa.Societies, func(x *models.Society) int { return x.Order })
		}
		if soc.Amenities == nil {
			soc.Amenities = []string{}
		}
		sa.Societies = append(sa.Societies, soc)
		return nil
	})
	if err != nil {
		return models.Society{}, err
	}
	return soc, nil
}

// UpdateSociety applies fn to the named society. A rename is allowed when
// the new name is free.
func (s *Store) UpdateSociety(ctx context.Context, key string, subAreaID int64, name string, fn func(soc *models.Society)) (models.Society, error) {
	var updated models.Society
	_, err := s.Mutate(ctx, key, func(a *models.Area) error {
		sa, err := findSubArea(a, subAreaID)
		if err != nil {
			return err
		}
		i := sa.FindSociety(name)
		if i < 0 {
			return apperr.NotFound("society")
		}
		fn(&sa.Societies[i])
		updated = sa.Societies[i]
		return nil
	})
	if err != nil {
		return models.Society{}, err
	}
	return updated, nil
}

// DeleteSociety removes the named society from the sub-area.
func (s *Store) DeleteSociety(ctx context.Context, key string, subAreaID int64, name string) error {
	_, err := s.Mutate(ctx, key, func(a *models.Area) error {
		sa, err := findSubArea(a, subAreaID)
		if err != nil {
			return err
		}
		i := sa.FindSociety(name)
		if i < 0 {
			return apperr.NotFound("society")
		}
		sa.Societies = append(sa.Societies[:i], sa.Societies[i+1:]...)
		return nil
	})
	return err
}

// ReplaceSocieties replaces the whole society list of the sub-area. Order
// values are taken from list position.
func (s *Store) ReplaceSocieties(ctx context.Context, key string, subAreaID int64, socs []models.Society) (models.SubArea, error) {
	var updated models.SubArea
	_, err := s.Mutate(ctx, key, func(a *models.Area) error {
		sa, err := findSubArea(a, subAreaID)
		if err != nil {
			return err
		}
		list := make([]models.Society, len(socs))
		for i, soc := range socs {
			if soc.Amenities == nil {
				soc.Amenities = []string{}
			}
			soc.Order = i
			list[i] = soc
		}
		sa.Societies = list
		updated = *sa
		return nil
	})
	if err != nil {
		return models.SubArea{}, err
	}
	return updated, nil
}

// ReorderSocieties sets order := index for the society names in plan.
func (s *Store) ReorderSocieties(ctx context.Context, key string, subAreaID int64, plan []ordering.Assignment) (models.SubArea, error) {
	var updated models.SubArea
	_, err := s.Mutate(ctx, key, func(a *models.Area) error {
		sa, err := findSubArea(a, subAreaID)
		if err != nil {
			return err
		}
		out, err := ordering.Apply("societies", sa.Societies, plan,
			func(x *models.Society) string { return x.Name },
			func(x *models.Society, o int) { x.Order = o })
		if err != nil {
			return err
		}
		sa.Societies = out
		updated = *sa
		return nil
	})
	if err != nil {
		return models.SubArea{}, err
	}
	return updated, nil
}
