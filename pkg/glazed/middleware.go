package glazed

import (
	"fmt"
	"os"
	"strings"

	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	gmiddlewares "github.com/go-go-golems/glazed/pkg/cmds/middlewares"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// UpdateFromParamsFile loads a flat YAML mapping of parameter names to values
// and updates matching parameters across all layers.
//
// Typical usage, placed so that cobra flags still win:
//
//	middlewares.ParseFromCobraCommand(cmd),
//	glazed.UpdateFromParamsFile("orion.yaml",
//	    parameters.WithParseStepSource("params-file"),
//	),
//	middlewares.GatherFlagsFromViper(),
//	middlewares.SetFromDefaults(),
//
// Example file:
//
//	inputs: [2MASS.csv, WISE.csv, Gaia.csv]
//	radius: 1
//	values: ["RAJ2000 DEJ2000", "RAJ2000 DEJ2000", "RA DE"]
//	suffixes: [2MASS, WISE, Gaia]
func UpdateFromParamsFile(path string, options ...parameters.ParseStepOption) gmiddlewares.Middleware {
	return func(next gmiddlewares.HandlerFunc) gmiddlewares.HandlerFunc {
		return func(layers *glayers.ParameterLayers, parsed *glayers.ParsedLayers) error {
			// Run the rest of the chain first; then apply file values.
			if err := next(layers, parsed); err != nil {
				return err
			}

			values, err := readParamsFile(path)
			if err != nil {
				return err
			}

			err = layers.ForEachE(func(_ string, l glayers.ParameterLayer) error {
				parsedLayer := parsed.GetOrCreate(l)
				pds := l.GetParameterDefinitions()
				return pds.ForEachE(func(pd *parameters.ParameterDefinition) error {
					v, ok := values[pd.Name]
					if !ok {
						return nil
					}
					nv, err := normalizeValue(pd, v)
					if err != nil {
						return fmt.Errorf("%s: %s: %w", path, pd.Name, err)
					}
					return parsedLayer.Parameters.UpdateValue(pd.Name, pd, nv, options...)
				})
			})
			if err != nil {
				return err
			}
			log.Debug().Str("path", path).Int("keys", len(values)).Msg("applied params file")
			return nil
		}
	}
}

func readParamsFile(path string) (map[string]interface{}, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read params file: %w", err)
	}
	values := map[string]interface{}{}
	if err := yaml.Unmarshal(b, &values); err != nil {
		return nil, fmt.Errorf("failed to parse params file %s: %w", path, err)
	}
	// accept snake_case keys as written in job files
	out := make(map[string]interface{}, len(values))
	for k, v := range values {
		out[strings.ReplaceAll(k, "_", "-")] = v
	}
	return out, nil
}

// normalizeValue coerces YAML-decoded values to the types glazed expects.
func normalizeValue(pd *parameters.ParameterDefinition, v interface{}) (interface{}, error) {
	switch pd.Type {
	case parameters.ParameterTypeFloat:
		switch n := v.(type) {
		case int:
			return float64(n), nil
		case float64:
			return n, nil
		default:
			return nil, fmt.Errorf("expected a number, got %T", v)
		}
	case parameters.ParameterTypeStringList:
		switch l := v.(type) {
		case string:
			return []string{l}, nil
		case []interface{}:
			out := make([]string, len(l))
			for i, item := range l {
				if item == nil {
					continue
				}
				out[i] = fmt.Sprint(item)
			}
			return out, nil
		default:
			return nil, fmt.Errorf("expected a string or a list, got %T", v)
		}
	case parameters.ParameterTypeString, parameters.ParameterTypeChoice:
		if v == nil {
			return "", nil
		}
		return fmt.Sprint(v), nil
	}
	return v, nil
}
