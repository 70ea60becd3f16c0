// Package provider implements a rate-limited HTTP client for a remote
// descriptor service. The service performs the actual chemistry: parsing
// SMILES strings, structure dictionaries and composition formulas, and
// computing descriptor vectors for molecules, structures, compositions and
// molecule/protein complexes. The client satisfies every parsing capability
// and featurizer hook in this module, so a single configured Client can
// drive all batch templates.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/crestlab/featurize/internal/chem"
	"github.com/crestlab/featurize/internal/crystal"
	"github.com/crestlab/featurize/internal/feature"
	"github.com/crestlab/featurize/internal/featurize"
)

const (
	// DefaultBaseURL is the default descriptor service endpoint.
	DefaultBaseURL = "http://localhost:8410"

	// DefaultDescriptorSet is the descriptor set computed when none is
	// configured.
	DefaultDescriptorSet = "physchem-2d"

	// DefaultTimeout is the timeout for descriptor requests.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the request rate limit in requests per second.
	DefaultRateLimit = 20.0

	// APIKeyEnv is the environment variable consulted for the API key.
	APIKeyEnv = "FEATURIZE_API_KEY"

	apiPathHealth      = "/api/health"
	apiPathParseSMILES = "/api/parse/smiles"
	apiPathParseStruct = "/api/parse/structure"
	apiPathParseComp   = "/api/parse/composition"
	apiPathMolecule    = "/api/descriptors/molecule"
	apiPathStructure   = "/api/descriptors/structure"
	apiPathComposition = "/api/descriptors/composition"
	apiPathComplex     = "/api/descriptors/complex"
)

// Client is a rate-limited client for the descriptor service.
type Client struct {
	baseURL    string
	set        string
	apiKey     string
	dimensions int
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Interface compliance.
var (
	_ chem.Parser                     = (*Client)(nil)
	_ crystal.StructureParser         = (*Client)(nil)
	_ crystal.CompositionParser       = (*Client)(nil)
	_ featurize.MoleculeFeaturizer    = (*Client)(nil)
	_ featurize.StructureFeaturizer   = (*Client)(nil)
	_ featurize.CompositionFeaturizer = (*Client)(nil)
	_ featurize.ComplexFeaturizer     = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the descriptor service base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithDescriptorSet sets the descriptor set to compute.
func WithDescriptorSet(set string) Option {
	return func(c *Client) {
		c.set = set
	}
}

// WithAPIKey sets the API key for authenticated requests.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithDimensions sets the expected vector width for the configured
// descriptor set. When set, descriptor responses of a different width are
// rejected. Zero (the default) disables the check.
func WithDimensions(dims int) Option {
	return func(c *Client) {
		c.dimensions = dims
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRateLimit sets the request rate limit in requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// New creates a descriptor service client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		set:        DefaultDescriptorSet,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
	}

	if key := os.Getenv(APIKeyEnv); key != "" {
		c.apiKey = key
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DescriptorSet returns the descriptor set this client computes.
func (c *Client) DescriptorSet() string {
	return c.set
}

// Dimensions returns the expected vector width, or 0 when none is
// configured.
func (c *Client) Dimensions() int {
	return c.dimensions
}

// checkDimensions validates a descriptor vector against the configured
// expected width.
func (c *Client) checkDimensions(vec feature.Vector) error {
	if c.dimensions > 0 && len(vec) != c.dimensions {
		return fmt.Errorf("unexpected descriptor dimensions: got %d, want %d", len(vec), c.dimensions)
	}
	return nil
}

// post performs a rate-limited POST of in as JSON and decodes the response
// into out. A 422 response is mapped to a domain error so batch loops
// recover it per item; every other failure is a plain error.
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		return nil
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return featurize.Domainf("descriptor service rejected input: %s", formatErrorBody(resp.Body))
	default:
		return &statusError{code: resp.StatusCode, msg: formatErrorBody(resp.Body)}
	}
}

// statusError carries the HTTP status for callers that map specific
// statuses to domain-level outcomes.
type statusError struct {
	code int
	msg  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("descriptor service returned status %d: %s", e.code, e.msg)
}

// hasStatus reports whether err carries the given HTTP status code.
func hasStatus(err error, code int) bool {
	var se *statusError
	return errors.As(err, &se) && se.code == code
}

// formatErrorBody reads and formats the response body for error messages.
func formatErrorBody(body io.Reader) string {
	respBody, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("(failed to read response body: %v)", err)
	}

	var e errorResponse
	if json.Unmarshal(respBody, &e) == nil && e.Error != "" {
		return e.Error
	}
	return string(respBody)
}

// ParseSMILES parses a SMILES string through the service.
func (c *Client) ParseSMILES(ctx context.Context, smiles string) (*chem.Molecule, error) {
	var result moleculeResponse
	if err := c.post(ctx, apiPathParseSMILES, parseSMILESRequest{SMILES: smiles}, &result); err != nil {
		return nil, err
	}
	return result.Molecule, nil
}

// ParseStructure parses a structure dictionary through the service.
func (c *Client) ParseStructure(ctx context.Context, d crystal.StructureDict) (*crystal.Structure, error) {
	var result structureResponse
	if err := c.post(ctx, apiPathParseStruct, parseStructureRequest{Structure: d}, &result); err != nil {
		return nil, err
	}
	return result.Structure, nil
}

// ParseComposition parses a composition formula through the service.
func (c *Client) ParseComposition(ctx context.Context, formula string) (*crystal.Composition, error) {
	var result compositionResponse
	if err := c.post(ctx, apiPathParseComp, parseCompositionRequest{Formula: formula}, &result); err != nil {
		return nil, err
	}
	return result.Composition, nil
}

// FeaturizeMolecule computes the configured descriptor set for a molecule.
func (c *Client) FeaturizeMolecule(ctx context.Context, mol *chem.Molecule) (feature.Vector, error) {
	var result featuresResponse
	req := moleculeFeaturesRequest{Set: c.set, Molecule: mol}
	if err := c.post(ctx, apiPathMolecule, req, &result); err != nil {
		return nil, err
	}
	if err := c.checkDimensions(result.Features); err != nil {
		return nil, err
	}
	return result.Features, nil
}

// FeaturizeStructure computes the configured descriptor set for a crystal
// structure.
func (c *Client) FeaturizeStructure(ctx context.Context, s *crystal.Structure) (feature.Vector, error) {
	var result featuresResponse
	req := structureFeaturesRequest{Set: c.set, Structure: s}
	if err := c.post(ctx, apiPathStructure, req, &result); err != nil {
		return nil, err
	}
	if err := c.checkDimensions(result.Features); err != nil {
		return nil, err
	}
	return result.Features, nil
}

// FeaturizeComposition computes the configured descriptor set for a crystal
// composition.
func (c *Client) FeaturizeComposition(ctx context.Context, comp *crystal.Composition) (feature.Vector, error) {
	var result featuresResponse
	req := compositionFeaturesRequest{Set: c.set, Composition: comp}
	if err := c.post(ctx, apiPathComposition, req, &result); err != nil {
		return nil, err
	}
	if err := c.checkDimensions(result.Features); err != nil {
		return nil, err
	}
	return result.Features, nil
}

// FeaturizeComplex computes descriptors for a molecule/protein complex. The
// pair's files are read locally and shipped to the service. An unreadable
// file, an input the service cannot process, or a pair the service does not
// know (404) yields the null sentinel so Complexes records the pair as a
// failure instead of aborting.
func (c *Client) FeaturizeComplex(ctx context.Context, molFile, proteinFile string) (feature.Vector, error) {
	molData, err := os.ReadFile(molFile)
	if err != nil {
		return nil, nil
	}
	proteinData, err := os.ReadFile(proteinFile)
	if err != nil {
		return nil, nil
	}

	var result featuresResponse
	req := complexFeaturesRequest{
		Set:     c.set,
		Ligand:  string(molData),
		Protein: string(proteinData),
	}
	if err := c.post(ctx, apiPathComplex, req, &result); err != nil {
		if featurize.IsDomainError(err) || hasStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return result.Features, nil
}

// IsAvailable checks that the descriptor service is running and reachable.
func (c *Client) IsAvailable(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+apiPathHealth, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("descriptor service is not running: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("descriptor service returned status %d", resp.StatusCode)
	}
	return nil
}

// Request and response bodies for the descriptor service API.

type parseSMILESRequest struct {
	SMILES string `json:"smiles"`
}

type parseStructureRequest struct {
	Structure crystal.StructureDict `json:"structure"`
}

type parseCompositionRequest struct {
	Formula string `json:"formula"`
}

type moleculeFeaturesRequest struct {
	Set      string         `json:"set"`
	Molecule *chem.Molecule `json:"molecule"`
}

type structureFeaturesRequest struct {
	Set       string             `json:"set"`
	Structure *crystal.Structure `json:"structure"`
}

type compositionFeaturesRequest struct {
	Set         string               `json:"set"`
	Composition *crystal.Composition `json:"composition"`
}

type complexFeaturesRequest struct {
	Set     string `json:"set"`
	Ligand  string `json:"ligand"`
	Protein string `json:"protein"`
}

type moleculeResponse struct {
	Molecule *chem.Molecule `json:"molecule"`
}

type structureResponse struct {
	Structure *crystal.Structure `json:"structure"`
}

type compositionResponse struct {
	Composition *crystal.Composition `json:"composition"`
}

type featuresResponse struct {
	Features feature.Vector `json:"features"`
}

type errorResponse struct {
	Error string `json:"error"`
}
