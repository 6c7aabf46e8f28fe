// Package vsphere collects the VM fleet summary from a vCenter server.
// Only aggregate totals leave this package; per-VM identity stays here.
package vsphere

import (
	"context"
	"net/url"
	"time"

	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/session"
	"github.com/vmware/govmomi/vim25"
	"github.com/vmware/govmomi/vim25/soap"
	"go.uber.org/zap"

	"github.com/kubev2v/capacity-planner/internal/models"
	srvErrors "github.com/kubev2v/capacity-planner/pkg/errors"
)

const verifyTimeout = 10 * time.Second

// Client wraps a govmomi connection to one vCenter endpoint.
type Client struct {
	client *govmomi.Client
	logger *zap.SugaredLogger
}

func newGovmomiClient(ctx context.Context, creds *models.Credentials) (*govmomi.Client, error) {
	u, err := soap.ParseURL(creds.URL)
	if err != nil {
		return nil, err
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/sdk"
	}
	u.User = url.UserPassword(creds.Username, creds.Password)

	vimClient, err := vim25.NewClient(ctx, soap.NewClient(u, true))
	if err != nil {
		return nil, err
	}

	client := &govmomi.Client{
		SessionManager: session.NewManager(vimClient),
		Client:         vimClient,
	}

	if err := client.Login(ctx, u.User); err != nil {
		return nil, srvErrors.NewVCenterError(err)
	}

	return client, nil
}

// Connect authenticates against vCenter and returns a connected client.
func Connect(ctx context.Context, creds *models.Credentials) (*Client, error) {
	client, err := newGovmomiClient(ctx, creds)
	if err != nil {
		return nil, err
	}
	return &Client{
		client: client,
		logger: zap.S().Named("vsphere"),
	}, nil
}

// VerifyCredentials checks that the credentials can open a vCenter session.
func VerifyCredentials(ctx context.Context, creds *models.Credentials) error {
	verifyCtx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	logger := zap.S().Named("vsphere")
	logger.Info("verifying vCenter credentials")

	client, err := newGovmomiClient(verifyCtx, creds)
	if err != nil {
		return err
	}

	_ = client.Logout(verifyCtx)
	client.CloseIdleConnections()

	logger.Info("vCenter credentials verified successfully")
	return nil
}

// Disconnect closes the vCenter session.
func (c *Client) Disconnect(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	err := c.client.Logout(ctx)
	c.client.CloseIdleConnections()
	return err
}
