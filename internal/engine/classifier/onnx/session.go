package onnx

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ortEnv manages global ONNX Runtime initialization (process-wide singleton).
var ortEnv struct {
	once sync.Once
	err  error
}

// initORT initializes the ONNX Runtime environment. Only the first call has
// any effect; later calls return the first call's error.
func initORT(libPath string) error {
	ortEnv.once.Do(func() {
		ort.SetSharedLibraryPath(libPath)
		ortEnv.err = ort.InitializeEnvironment()
	})
	return ortEnv.err
}

// session wraps a DynamicAdvancedSession over a model taking one [1, V]
// float32 count vector and producing a [1, C] probability tensor.
type session struct {
	session    *ort.DynamicAdvancedSession
	inputName  string
	outputName string
	features   int64
	classes    int64
}

func newSession(modelPath, libPath, outputName string, features, classes int) (*session, error) {
	if err := initORT(libPath); err != nil {
		return nil, fmt.Errorf("initialize runtime: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("read model info: %w", err)
	}
	if len(inputs) != 1 {
		return nil, fmt.Errorf("expected 1 model input, got %d", len(inputs))
	}
	if err := checkDims("input", inputs[0].Dimensions, int64(features)); err != nil {
		return nil, err
	}

	out, err := findOutput(outputs, outputName)
	if err != nil {
		return nil, err
	}
	if err := checkDims("output", out.Dimensions, int64(classes)); err != nil {
		return nil, err
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("create session options: %w", err)
	}
	defer opts.Destroy()
	opts.SetIntraOpNumThreads(1)
	opts.SetInterOpNumThreads(1)

	s, err := ort.NewDynamicAdvancedSession(modelPath, []string{inputs[0].Name}, []string{out.Name}, opts)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &session{
		session:    s,
		inputName:  inputs[0].Name,
		outputName: out.Name,
		features:   int64(features),
		classes:    int64(classes),
	}, nil
}

func findOutput(outputs []ort.InputOutputInfo, name string) (ort.InputOutputInfo, error) {
	for _, o := range outputs {
		if o.Name == name {
			return o, nil
		}
	}
	names := make([]string, len(outputs))
	for i, o := range outputs {
		names[i] = o.Name
	}
	return ort.InputOutputInfo{}, fmt.Errorf("model has no output %q (outputs: %v)", name, names)
}

// checkDims validates a [batch, n] tensor shape. Dynamic dimensions (<= 0)
// are accepted.
func checkDims(what string, dims ort.Shape, want int64) error {
	if len(dims) != 2 {
		return fmt.Errorf("expected 2D %s tensor, got %v", what, dims)
	}
	if dims[1] > 0 && dims[1] != want {
		return fmt.Errorf("%s tensor has width %d, want %d", what, dims[1], want)
	}
	return nil
}

// infer runs one inference call over a single count vector and returns a copy
// of the probability row.
func (s *session) infer(counts []float32) ([]float32, error) {
	in, err := ort.NewTensor(ort.NewShape(1, s.features), counts)
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}
	defer in.Destroy()

	out, err := ort.NewEmptyTensor[float32](ort.NewShape(1, s.classes))
	if err != nil {
		return nil, fmt.Errorf("create output tensor: %w", err)
	}
	defer out.Destroy()

	if err := s.session.Run([]ort.Value{in}, []ort.Value{out}); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	// Copy data out before the tensor is destroyed.
	src := out.GetData()
	result := make([]float32, len(src))
	copy(result, src)
	return result, nil
}

func (s *session) close() error {
	return s.session.Destroy()
}
