package cliservice

import (
	"github.com/casper-ecosystem/casper-client-go/casper/client"
	"github.com/casper-ecosystem/casper-client-go/casper/common"
	"github.com/casper-ecosystem/casper-client-go/casper/common/logging"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentRequests bounds the requests GetDeploys keeps in flight.
const maxConcurrentRequests = 8

// GetDeploys fetches the deploys concurrently. Results are in the order of hashes.
func (s *Service) GetDeploys(hashes []common.Hash, finalizedApprovals bool) ([]*client.GetDeployResult, error) {
	c, err := s.nodeClient()
	if err != nil {
		return nil, err
	}

	results := make([]*client.GetDeployResult, len(hashes))
	g, ctx := errgroup.WithContext(s.ctx)
	g.SetLimit(maxConcurrentRequests)
	for i, hash := range hashes {
		g.Go(func() error {
			res, err := c.GetDeploy(ctx, hash, finalizedApprovals)
			if err != nil {
				s.logger.Error().Err(err).Stringer(logging.FieldDeployHash, hash).Msg("Failed to fetch deploy")
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// GetStatus returns the status of the connected node.
func (s *Service) GetStatus() (*client.NodeStatus, error) {
	c, err := s.nodeClient()
	if err != nil {
		return nil, err
	}
	return c.GetStatus(s.ctx)
}
