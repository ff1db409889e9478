package upstream

import (
	"context"

	"github.com/Shivaram-9/HireSphereX-sub000/pkg/model"
)

func (c *Client) ListCompanies(ctx context.Context) ([]model.Company, error) {
	var out []model.Company
	if err := c.getList(ctx, "/companies", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListPlacementDrives(ctx context.Context) ([]model.PlacementDrive, error) {
	var out []model.PlacementDrive
	if err := c.getList(ctx, "/placement-drives", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListCities(ctx context.Context) ([]model.City, error) {
	var out []model.City
	if err := c.getList(ctx, "/cities", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListPrograms(ctx context.Context) ([]model.Program, error) {
	var out []model.Program
	if err := c.getList(ctx, "/programs", &out); err != nil {
		return nil, err
	}
	return out, nil
}
