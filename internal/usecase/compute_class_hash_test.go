package usecase_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/starknet-mobile/starkdeploy/internal/domain"
	"github.com/starknet-mobile/starkdeploy/internal/domain/models"
	"github.com/starknet-mobile/starkdeploy/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeClassHash(t *testing.T) {
	ctx := context.Background()
	contract := &models.Contract{Name: "Counter", Package: "counter"}

	run := func(t *testing.T, class *models.ContractClass, params usecase.ComputeClassHashParams, writer *memoryWriter) (*usecase.ComputeClassHashResult, error) {
		repo := new(MockContractRepository)
		repo.On("FindContracts", ctx, domain.ContractQuery{Name: "Counter"}).Return([]*models.Contract{contract}, nil)
		repo.On("LoadClass", ctx, contract).Return(class, nil)
		sink := &MockProgressSink{}
		resolver := usecase.NewResolveContract(testConfig(), repo, nil, sink)
		return usecase.NewComputeClassHash(resolver, writer, sink).Run(ctx, params)
	}

	t.Run("computes and saves", func(t *testing.T) {
		writer := newMemoryWriter()
		result, err := run(t, counterClass(t), usecase.ComputeClassHashParams{Contract: "Counter"}, writer)
		require.NoError(t, err)

		assert.Regexp(t, `^0x[0-9a-f]+$`, result.Info.ClassHash)
		assert.Equal(t, "0.1.0", result.Info.ContractClassVersion)
		assert.Equal(t, 4, result.ProgramLength)
		assert.Equal(t, 2, result.EntryPointCounts[models.EntryPointExternal])
		assert.Equal(t, "/out/class_hash.json", result.Path)
		assert.Equal(t, result.Info, writer.files[usecase.ClassHashFile])
	})

	t.Run("known class hashes", func(t *testing.T) {
		tests := []struct {
			artifact string
			want     string
		}{
			{artifact: helloStarknetClass, want: helloStarknetClassHash},
			{artifact: legacyHelloStarknetClass, want: legacyHelloStarknetClassHash},
		}
		for _, tt := range tests {
			t.Run(tt.artifact, func(t *testing.T) {
				result, err := run(t, artifactClass(t, tt.artifact), usecase.ComputeClassHashParams{Contract: "Counter", NoSave: true}, newMemoryWriter())
				require.NoError(t, err)
				assert.Equal(t, tt.want, result.Info.ClassHash)
				assert.Empty(t, result.Path)
			})
		}
	})

	t.Run("abi array formatting does not change the hash", func(t *testing.T) {
		base := counterClass(t)
		var compact, indented bytes.Buffer
		require.NoError(t, json.Compact(&compact, base.RawABI()))
		require.NoError(t, json.Indent(&indented, base.RawABI(), "", "    "))

		var hashes []string
		for _, abi := range [][]byte{compact.Bytes(), indented.Bytes()} {
			result, err := run(t, withRawABI(t, base, abi), usecase.ComputeClassHashParams{Contract: "Counter", NoSave: true}, newMemoryWriter())
			require.NoError(t, err)
			hashes = append(hashes, result.Info.ClassHash)
		}
		assert.Equal(t, hashes[0], hashes[1])
	})

	t.Run("string abi is hashed verbatim", func(t *testing.T) {
		class := artifactClass(t, legacyHelloStarknetClass)
		var abi string
		require.NoError(t, json.Unmarshal(class.RawABI(), &abi))
		padded, err := json.Marshal(abi + " ")
		require.NoError(t, err)

		result, err := run(t, withRawABI(t, class, padded), usecase.ComputeClassHashParams{Contract: "Counter", NoSave: true}, newMemoryWriter())
		require.NoError(t, err)
		assert.NotEqual(t, legacyHelloStarknetClassHash, result.Info.ClassHash)
	})

	t.Run("missing version uses default", func(t *testing.T) {
		class := counterClass(t)
		class.ContractClassVersion = ""
		result, err := run(t, class, usecase.ComputeClassHashParams{Contract: "Counter", NoSave: true}, newMemoryWriter())
		require.NoError(t, err)
		assert.Equal(t, models.DefaultContractClassVersion, result.Info.ContractClassVersion)
	})

	t.Run("write failure", func(t *testing.T) {
		writer := newMemoryWriter()
		writer.err = errors.New("read-only file system")
		_, err := run(t, counterClass(t), usecase.ComputeClassHashParams{Contract: "Counter"}, writer)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read-only")
	})
}

func TestComputeSelectors(t *testing.T) {
	uc := usecase.NewComputeSelectors()

	result, err := uc.Run(context.Background(), usecase.ComputeSelectorsParams{
		Names: []string{"increase_counter", " get_counter ", "__default__"},
	})
	require.NoError(t, err)
	assert.Equal(t, []usecase.SelectorResult{
		{Name: "increase_counter", Selector: "0x245f9bea6574169db91599999bf914dd43aebc1e0544bdc96c9f401a52b8768"},
		{Name: "get_counter", Selector: "0x3370263ab53343580e77063a719a5865004caff7f367ec136a6cdd34b6786ca"},
		{Name: "__default__", Selector: "0x0"},
	}, result.Selectors)

	_, err = uc.Run(context.Background(), usecase.ComputeSelectorsParams{})
	assert.Error(t, err)
}

// withRawABI re-parses class with its abi member replaced by abi, byte for byte
func withRawABI(t *testing.T, class *models.ContractClass, abi []byte) *models.ContractClass {
	t.Helper()
	rest, err := json.Marshal(struct {
		Version     string                   `json:"contract_class_version"`
		Program     any                      `json:"sierra_program"`
		EntryPoints models.EntryPointsByType `json:"entry_points_by_type"`
	}{class.ContractClassVersion, class.SierraProgram, class.EntryPointsByType})
	require.NoError(t, err)

	doc := append(bytes.TrimSuffix(rest, []byte("}")), `,"abi":`...)
	doc = append(append(doc, abi...), '}')
	parsed, err := models.ParseContractClass(doc)
	require.NoError(t, err)
	return parsed
}
