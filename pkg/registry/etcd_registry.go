package registry

import (
	"context"
	"fmt"

	clientv3 "go.etcd.io/etcd/client/v3"

	"video-ingest-service/pkg/config"
	"video-ingest-service/pkg/logger"
)

// ServiceRegistry registers the HTTP endpoint into etcd under a leased
// key so consumers can discover live instances.
type ServiceRegistry struct {
	client      *clientv3.Client
	serviceName string
	serviceID   string
	serviceAddr string
	ttl         int64
	leaseID     clientv3.LeaseID
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewServiceRegistry creates a registry client from configuration.
func NewServiceRegistry(etcdCfg config.EtcdConfig, regCfg config.ServiceRegistryConfig, serviceAddr string) (*ServiceRegistry, error) {
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   etcdCfg.Endpoints,
		DialTimeout: etcdCfg.DialTimeout,
		Username:    etcdCfg.Username,
		Password:    etcdCfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	serviceID := regCfg.ServiceID
	if serviceID == "" {
		serviceID = serviceAddr
	}

	return &ServiceRegistry{
		client:      client,
		serviceName: regCfg.ServiceName,
		serviceID:   serviceID,
		serviceAddr: serviceAddr,
		ttl:         int64(regCfg.TTL.Seconds()),
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

// Register publishes the service address under a lease and starts the
// keepalive loop.
func (r *ServiceRegistry) Register() error {
	leaseResp, err := r.client.Grant(r.ctx, r.ttl)
	if err != nil {
		return fmt.Errorf("failed to grant lease: %w", err)
	}
	r.leaseID = leaseResp.ID

	key := fmt.Sprintf("/services/%s/%s", r.serviceName, r.serviceID)
	if _, err := r.client.Put(r.ctx, key, r.serviceAddr, clientv3.WithLease(r.leaseID)); err != nil {
		return fmt.Errorf("failed to register service: %w", err)
	}

	go r.keepAlive()

	logger.Infof("Service registered key=%s addr=%s", key, r.serviceAddr)
	return nil
}

func (r *ServiceRegistry) keepAlive() {
	ch, err := r.client.KeepAlive(r.ctx, r.leaseID)
	if err != nil {
		logger.Errorf("Failed to keep alive lease error=%v", err)
		return
	}
	for {
		select {
		case <-r.ctx.Done():
			return
		case ka := <-ch:
			if ka == nil {
				logger.Warnf("Keep alive channel closed service=%s", r.serviceName)
				return
			}
		}
	}
}

// Deregister revokes the lease and closes the etcd client.
func (r *ServiceRegistry) Deregister() error {
	r.cancel()
	if r.leaseID != 0 {
		if _, err := r.client.Revoke(context.Background(), r.leaseID); err != nil {
			logger.Warnf("Failed to revoke lease error=%v", err)
		}
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("failed to close etcd client: %w", err)
	}
	logger.Infof("Service deregistered service_id=%s", r.serviceID)
	return nil
}
