package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/paydesk/paydesk/internal/client/models"
	"github.com/paydesk/paydesk/internal/client/session"
	"github.com/paydesk/paydesk/internal/client/storage"
)

// BlueScanService manages the BlueScan apps of the stored merchant branch.
type BlueScanService interface {
	CreateApp(ctx context.Context, app models.BlueScanApp) (*models.BlueScanCreated, error)
	GetApp(ctx context.Context, appID string) (*models.BlueScanAppInfo, error)
	ListApps(ctx context.Context) ([]models.BlueScanAppInfo, error)
	UpdateApp(ctx context.Context, appID string, fields map[string]any) (string, error)
}

type blueScanService struct {
	facade Facade
}

func NewBlueScanService(facade Facade) BlueScanService {
	return &blueScanService{facade: facade}
}

// branch returns the stored merchant and branch ext_ids.
func (b *blueScanService) branch(ctx context.Context) (merchantID, branchID string, err error) {
	if merchantID, err = stored(ctx, b.facade, storage.KeyMerchantExtID); err != nil {
		return "", "", err
	}
	if branchID, err = stored(ctx, b.facade, storage.KeyBranchExtID); err != nil {
		return "", "", err
	}
	return merchantID, branchID, nil
}

// CreateApp registers an app under the stored branch and remembers its id.
func (b *blueScanService) CreateApp(ctx context.Context, app models.BlueScanApp) (*models.BlueScanCreated, error) {
	merchantID, branchID, err := b.branch(ctx)
	if err != nil {
		return nil, fmt.Errorf("create bluescan app: %w", err)
	}

	req := models.BlueScanRequest{MerchantID: merchantID, ExtID: branchID, App: app}
	raw, err := b.facade.AuthorizedRequest(ctx, http.MethodPost, "/merchant/create-bluescan-app", req)
	if err != nil {
		return nil, fmt.Errorf("create bluescan app: %w", err)
	}

	created, err := session.Decode[models.BlueScanCreated](raw)
	if err != nil {
		return nil, fmt.Errorf("create bluescan app: %w", err)
	}
	if created.BlueScanAppID == "" {
		return nil, fmt.Errorf("create bluescan app: %w", missingField(raw, "bluescan_app_id"))
	}

	if err := b.facade.Persist(ctx, storage.KeyBlueScanID, created.BlueScanAppID); err != nil {
		return nil, fmt.Errorf("create bluescan app: %w", err)
	}
	return &created, nil
}

func (b *blueScanService) GetApp(ctx context.Context, appID string) (*models.BlueScanAppInfo, error) {
	path, err := b.appPath(ctx, "/merchant/get-bluescan-app/%s/%s/%s", appID)
	if err != nil {
		return nil, fmt.Errorf("get bluescan app: %w", err)
	}

	raw, err := b.facade.AuthorizedRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("get bluescan app: %w", err)
	}
	info, err := session.Decode[models.BlueScanAppInfo](unwrapData(raw))
	if err != nil {
		return nil, fmt.Errorf("get bluescan app: %w", err)
	}
	return &info, nil
}

func (b *blueScanService) ListApps(ctx context.Context) ([]models.BlueScanAppInfo, error) {
	merchantID, branchID, err := b.branch(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bluescan apps: %w", err)
	}

	path := fmt.Sprintf("/merchant/list-bluescan-apps/%s/%s", url.PathEscape(merchantID), url.PathEscape(branchID))
	raw, err := b.facade.AuthorizedRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("list bluescan apps: %w", err)
	}

	list, err := decodeList(raw, func(a models.BlueScanAppInfo) bool { return a.ID == "" && a.Name == "" })
	if err != nil {
		return nil, fmt.Errorf("list bluescan apps: %w", err)
	}
	return list, nil
}

// UpdateApp changes name, type or sdk_host of an app. appID defaults to the
// stored one.
func (b *blueScanService) UpdateApp(ctx context.Context, appID string, fields map[string]any) (string, error) {
	path, err := b.appPath(ctx, "/merchant/update-bluescan-app/%s/branches/%s/bluescan_apps/%s", appID)
	if err != nil {
		return "", fmt.Errorf("update bluescan app: %w", err)
	}

	raw, err := b.facade.AuthorizedRequest(ctx, http.MethodPut, path, fields)
	if err != nil {
		return "", fmt.Errorf("update bluescan app: %w", err)
	}
	msg, err := message(raw)
	if err != nil {
		return "", fmt.Errorf("update bluescan app: %w", err)
	}
	return msg, nil
}

// appPath fills format with the stored merchant and branch and the app id,
// all path-escaped.
func (b *blueScanService) appPath(ctx context.Context, format, appID string) (string, error) {
	appID, err := orStored(ctx, b.facade, appID, storage.KeyBlueScanID)
	if err != nil {
		return "", err
	}
	merchantID, branchID, err := b.branch(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(format, url.PathEscape(merchantID), url.PathEscape(branchID), url.PathEscape(appID)), nil
}
