package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"text/template"
)

const resourcesDoc = `stress:
  speed: 40
  hitPoints: 250
  defense: 0.25
  frequency: 5
`

var entityTemplate = template.Must(template.New("entity").Parse(`<entity layer="{{.Layer}}" group="{{.Group}}" position="{{.X}}, {{.Y}}" rotation="{{.Rotation}}">
	<Follow target="{{.Target}}" speed="$(@stress.speed * {{.SpeedFactor}})" lookAt="true"/>
	<Health hitPoints="@stress.hitPoints" defense="@stress.defense"/>
	<Debugger option="NONE" frequency="@stress.frequency"/>
</entity>
`))

var manifestTemplate = template.Must(template.New("scene").Parse(`<scene resources="resources.yaml">
{{- range .}}
	<entity file="{{.File}}" name="{{.Name}}"/>
{{- end}}
</scene>
`))

type generatedEntity struct {
	File, Name, Target, Group string
	Layer                     int
	X, Y                      int
	Rotation                  int
	SpeedFactor               float64
}

// generateScene writes a manifest of count entities spread over layers into
// dir. Every entity follows the one declared after it, so most references
// are forward and resolve only when the pending queue is drained.
func generateScene(dir string, count, layers int) (string, error) {
	if err := os.WriteFile(filepath.Join(dir, "resources.yaml"), []byte(resourcesDoc), 0o644); err != nil {
		return "", err
	}

	entities := make([]generatedEntity, count)
	for i := range entities {
		entities[i] = generatedEntity{
			File:        fmt.Sprintf("e%d.xml", i),
			Name:        fmt.Sprintf("e%d", i),
			Target:      fmt.Sprintf("e%d", (i+1)%count),
			Group:       fmt.Sprintf("g%d", i%8),
			Layer:       rand.Intn(layers),
			X:           rand.Intn(2000) - 1000,
			Y:           rand.Intn(2000) - 1000,
			Rotation:    rand.Intn(360),
			SpeedFactor: 0.5 + rand.Float64(),
		}
	}

	for _, e := range entities {
		f, err := os.Create(filepath.Join(dir, e.File))
		if err != nil {
			return "", err
		}
		err = entityTemplate.Execute(f, e)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return "", err
		}
	}

	path := filepath.Join(dir, "scene.xml")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := manifestTemplate.Execute(f, entities); err != nil {
		return "", err
	}
	return path, nil
}
