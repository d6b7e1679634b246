package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"honnef.co/go/bspline"
)

// splineFile is the YAML representation of a B-spline.
type splineFile struct {
	Degree        int            `yaml:"degree"`
	Knots         []float64      `yaml:"knots"`
	ControlPoints []controlPoint `yaml:"controlPoints"`
	Flatten       *bool          `yaml:"flatten"`
}

// controlPoint is either a number or a non-empty list of numbers.
type controlPoint struct {
	v bspline.Value
}

func (cp *controlPoint) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		cp.v = bspline.Scalar(f)
	case yaml.SequenceNode:
		var fs []float64
		if err := node.Decode(&fs); err != nil {
			return err
		}
		if len(fs) == 0 {
			return fmt.Errorf("line %d: control point has no components", node.Line)
		}
		cp.v = bspline.Tuple(bspline.Vec(fs...))
	default:
		return fmt.Errorf("line %d: control point must be a number or a list of numbers", node.Line)
	}
	return nil
}

func loadSpline(path string) (*bspline.BSpline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b, err := parseSpline(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

func parseSpline(data []byte) (*bspline.BSpline, error) {
	var f splineFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty spline definition")
		}
		return nil, err
	}

	cps := make([]bspline.Value, len(f.ControlPoints))
	for i, cp := range f.ControlPoints {
		cps[i] = cp.v
	}
	var opts []bspline.Option
	if f.Flatten != nil {
		opts = append(opts, bspline.WithFlatten(*f.Flatten))
	}
	if f.Knots == nil {
		return bspline.Uniform(cps, f.Degree, opts...)
	}
	return bspline.Build(f.Knots, cps, f.Degree, opts...)
}
