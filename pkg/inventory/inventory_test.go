package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Neve/ohai/pkg/attribute"
	"github.com/Neve/ohai/pkg/collector"
	"github.com/Neve/ohai/pkg/collector/openstack"
	"github.com/Neve/ohai/pkg/detector"
	"github.com/Neve/ohai/pkg/header"
	"github.com/Neve/ohai/pkg/serializer"
)

type stubCollector struct {
	res *openstack.Result
	err error
}

func (s *stubCollector) Collect(context.Context) (*openstack.Result, error) { return s.res, s.err }

type stubDetector struct {
	provider detector.Provider
	ok       bool
	err      error
}

func (s *stubDetector) Detect(context.Context) (detector.Provider, bool, error) {
	return s.provider, s.ok, s.err
}

type stubFactory struct {
	col *stubCollector
	det *stubDetector
}

func (f *stubFactory) CreateOpenStackCollector() collector.Collector { return f.col }
func (f *stubFactory) CreateDetector() collector.Detector            { return f.det }

type mockSerializer struct {
	serialized any
	err        error
}

func (m *mockSerializer) Serialize(_ context.Context, data any) error {
	m.serialized = data
	return m.err
}

func doneResult() *openstack.Result {
	return &openstack.Result{
		State:    openstack.StateDone,
		Provider: detector.ProviderOpenStack,
		Attributes: attribute.New().
			Set("provider", "openstack").
			Set("hostname", "web-1").
			Set("full_hostname", "web-1.novalocal"),
		Degraded: []openstack.Stage{openstack.StageNativeFetch},
	}
}

func TestNew(t *testing.T) {
	inv := New(doneResult(), "v1.0.0")

	assert.Equal(t, header.KindOpenStackInventory, inv.Kind)
	assert.Equal(t, header.APIVersion, inv.APIVersion)
	assert.Equal(t, "done", inv.Metadata[MetadataState])
	assert.Equal(t, "openstack", inv.Metadata[MetadataProvider])
	assert.Equal(t, "native-fetch", inv.Metadata[MetadataDegraded])
	assert.Equal(t, "v1.0.0", inv.Metadata[header.MetadataVersion])
	assert.Equal(t, 3, inv.OpenStack.Len())
}

func TestNew_NotApplicable(t *testing.T) {
	inv := New(&openstack.Result{State: openstack.StateNotApplicable, Attributes: attribute.New()}, "")

	assert.Equal(t, "not-applicable", inv.Metadata[MetadataState])
	assert.NotContains(t, inv.Metadata, MetadataProvider)
	assert.Nil(t, inv.OpenStack)

	b, err := json.Marshal(inv)
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"openstack"`)
}

func TestInventory_YAML(t *testing.T) {
	var buf bytes.Buffer
	inv := New(doneResult(), "v1.0.0")
	require.NoError(t, serializer.NewWriter(serializer.FormatYAML, &buf).Serialize(context.Background(), inv))

	var out struct {
		Kind      string            `yaml:"kind"`
		OpenStack map[string]string `yaml:"openstack"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "OpenStackInventory", out.Kind)
	assert.Equal(t, "web-1", out.OpenStack["hostname"])
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("hostname:")), bytes.Index(buf.Bytes(), []byte("full_hostname:")))
}

func TestInventorier_Collect(t *testing.T) {
	ser := &mockSerializer{}
	n := &Inventorier{
		Version:    "v1.0.0",
		Factory:    &stubFactory{col: &stubCollector{res: doneResult()}},
		Serializer: ser,
	}

	inv, err := n.Collect(context.Background())
	require.NoError(t, err)
	assert.Same(t, inv, ser.serialized)
}

func TestInventorier_Collect_Errors(t *testing.T) {
	boom := errors.New("boom")

	_, err := (&Inventorier{
		Factory:    &stubFactory{col: &stubCollector{err: boom}},
		Serializer: &mockSerializer{},
	}).Collect(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = (&Inventorier{
		Factory:    &stubFactory{col: &stubCollector{res: doneResult()}},
		Serializer: &mockSerializer{err: boom},
	}).Collect(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestInventorier_Detect(t *testing.T) {
	tests := []struct {
		name     string
		det      *stubDetector
		detected string
		provider string
	}{
		{"openstack", &stubDetector{provider: detector.ProviderHP, ok: true}, "true", "hp"},
		{"other cloud", &stubDetector{}, "false", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ser := &mockSerializer{}
			n := &Inventorier{Factory: &stubFactory{det: tt.det}, Serializer: ser}

			h, err := n.Detect(context.Background())
			require.NoError(t, err)
			assert.Equal(t, header.KindOpenStackDetection, h.Kind)
			assert.Equal(t, tt.detected, h.Metadata[MetadataDetected])
			assert.Equal(t, tt.provider, h.Metadata[MetadataProvider])
			assert.Same(t, h, ser.serialized)
		})
	}
}

func TestInventorier_DefaultsFactoryAndSerializer(t *testing.T) {
	n := &Inventorier{}
	n.init()
	assert.NotNil(t, n.Factory)
	assert.NotNil(t, n.Serializer)
}
