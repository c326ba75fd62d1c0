package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	ethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/starknet-mobile/starkdeploy/internal/domain"
	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
	"github.com/starknet-mobile/starkdeploy/pkg/starknet"
)

// Built-in network names
const (
	NetworkMainnet = "mainnet"
	NetworkSepolia = "sepolia"
	NetworkDevnet  = "devnet"
	NetworkCustom  = "custom"
)

// DefaultNetwork is selected when nothing else names a network
const DefaultNetwork = NetworkSepolia

const chainIDCacheFile = "chain_ids.json"

// builtinNetworks returns the well-known Starknet networks
func builtinNetworks() []config.Network {
	return []config.Network{
		{
			Name:        NetworkMainnet,
			RPCURL:      "https://starknet-mainnet.public.blastapi.io",
			ExplorerURL: "https://voyager.online",
		},
		{
			Name:        NetworkSepolia,
			RPCURL:      "https://starknet-sepolia.public.blastapi.io/rpc/v0_7",
			ExplorerURL: "https://sepolia.voyager.online",
		},
		{
			Name:   NetworkDevnet,
			RPCURL: "http://127.0.0.1:5050/rpc",
		},
	}
}

// NetworkResolver resolves network names to configurations with caching
type NetworkResolver struct {
	dataDir      string
	networks     map[string]*config.Network // lowercase name -> network
	customAlias  string                     // STARKNET_NETWORK value that maps to the custom network
	cache        *NetworkCache
	fetchTimeout time.Duration
	mu           sync.RWMutex
}

// NetworkCache caches chain ID lookups
type NetworkCache struct {
	Networks  map[string]string `json:"networks"` // name -> chain id
	RPCs      map[string]string `json:"rpcs"`     // rpc url -> chain id
	UpdatedAt time.Time         `json:"updatedAt"`
}

// NewNetworkResolver creates a new network resolver.
// Built-in networks are overlaid by [tool.starkdeploy.networks], then by STARKNET_RPC_URL.
func NewNetworkResolver(dataDir string, scarb *config.ScarbConfig) *NetworkResolver {
	r := &NetworkResolver{
		dataDir:      dataDir,
		networks:     make(map[string]*config.Network),
		fetchTimeout: 10 * time.Second,
	}

	for _, network := range builtinNetworks() {
		r.addNetwork(network)
	}

	for name, url := range scarb.DeployConfig().Networks {
		if url == "" {
			continue
		}
		if existing, ok := r.lookup(name); ok {
			existing.RPCURL = url
			continue
		}
		r.addNetwork(config.Network{Name: name, RPCURL: url})
	}

	if url := os.Getenv(EnvRPCURL); url != "" {
		selected := os.Getenv(EnvNetwork)
		if existing, ok := r.lookup(selected); ok {
			existing.RPCURL = url
		} else {
			r.addNetwork(config.Network{Name: NetworkCustom, RPCURL: url})
			r.customAlias = strings.ToLower(selected)
		}
	}

	r.loadCache()

	return r
}

// addNetwork adds a network configuration
func (r *NetworkResolver) addNetwork(network config.Network) {
	n := network
	r.networks[strings.ToLower(n.Name)] = &n
}

func (r *NetworkResolver) lookup(name string) (*config.Network, bool) {
	n, ok := r.networks[strings.ToLower(name)]
	return n, ok
}

// GetNetworks returns the names of all known networks, sorted
func (r *NetworkResolver) GetNetworks() []string {
	names := make([]string, 0, len(r.networks))
	for _, n := range r.networks {
		names = append(names, n.Name)
	}
	sort.Strings(names)
	return names
}

// Resolve resolves a network name (or a raw RPC URL) to its configuration.
// The chain id is filled from the cache only; use FetchChainID to query the node.
func (r *NetworkResolver) Resolve(networkName string) (*config.Network, error) {
	if networkName == "" {
		return nil, fmt.Errorf("%w: network not specified", domain.ErrUnknownNetwork)
	}

	var network config.Network
	switch n, ok := r.lookup(networkName); {
	case ok:
		network = *n
	case isRPCURL(networkName):
		network = config.Network{Name: NetworkCustom, RPCURL: networkName}
	case r.customAlias != "" && strings.EqualFold(networkName, r.customAlias):
		custom, _ := r.lookup(NetworkCustom)
		network = *custom
	default:
		return nil, fmt.Errorf("%w: '%s' (known networks: %s)", domain.ErrUnknownNetwork, networkName, strings.Join(r.GetNetworks(), ", "))
	}

	r.mu.RLock()
	if chainID, cached := r.cache.RPCs[network.RPCURL]; cached {
		network.ChainID = chainID
	}
	r.mu.RUnlock()

	if network.ExplorerURL == "" {
		network.ExplorerURL = ExplorerURL(network.ChainID)
	}

	return &network, nil
}

// FetchChainID returns the chain id served at the network's RPC URL,
// probing the node with starknet_chainId on a cache miss
func (r *NetworkResolver) FetchChainID(ctx context.Context, network *config.Network) (string, error) {
	r.mu.RLock()
	if chainID, exists := r.cache.RPCs[network.RPCURL]; exists {
		r.mu.RUnlock()
		return chainID, nil
	}
	r.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()

	client, err := ethrpc.DialContext(ctx, network.RPCURL)
	if err != nil {
		return "", fmt.Errorf("failed to connect to %s: %w", network.RPCURL, err)
	}
	defer client.Close()

	var raw string
	if err := client.CallContext(ctx, &raw, "starknet_chainId"); err != nil {
		return "", fmt.Errorf("starknet_chainId failed: %w", err)
	}
	if raw == "" {
		return "", fmt.Errorf("empty chain ID response")
	}

	chainID := starknet.DecodeChainID(raw)
	r.updateCache(network.Name, network.RPCURL, chainID)
	return chainID, nil
}

// ExplorerURL returns the explorer for a chain id, empty for unknown chains
func ExplorerURL(chainID string) string {
	switch chainID {
	case starknet.ChainIDMainnet:
		return "https://voyager.online"
	case starknet.ChainIDSepolia:
		return "https://sepolia.voyager.online"
	default:
		return ""
	}
}

func isRPCURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "ws://") || strings.HasPrefix(s, "wss://")
}

func (r *NetworkResolver) cachePath() string {
	return filepath.Join(r.dataDir, "cache", chainIDCacheFile)
}

// loadCache loads the chain ID cache from disk
func (r *NetworkResolver) loadCache() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache = newNetworkCache()

	data, err := os.ReadFile(r.cachePath())
	if err != nil {
		return
	}

	var loaded NetworkCache
	if err := json.Unmarshal(data, &loaded); err != nil {
		return
	}
	if loaded.Networks != nil {
		r.cache.Networks = loaded.Networks
	}
	if loaded.RPCs != nil {
		r.cache.RPCs = loaded.RPCs
	}
	r.cache.UpdatedAt = loaded.UpdatedAt
}

func newNetworkCache() *NetworkCache {
	return &NetworkCache{
		Networks:  make(map[string]string),
		RPCs:      make(map[string]string),
		UpdatedAt: time.Now(),
	}
}

// updateCache records a fetched chain id and persists the cache.
// Write failures are ignored; the cache only saves round trips.
func (r *NetworkResolver) updateCache(networkName, rpcURL, chainID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Networks[networkName] = chainID
	r.cache.RPCs[rpcURL] = chainID
	r.cache.UpdatedAt = time.Now()

	_ = r.saveCache()
}

// saveCache saves the cache to disk
func (r *NetworkResolver) saveCache() error {
	path := r.cachePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r.cache, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
