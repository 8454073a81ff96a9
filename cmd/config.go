package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"readygate"
)

func LoadConfigFile(path string) (*FileConfig, error) {

	file, err := os.OpenFile(path, os.O_RDONLY, os.ModePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %s", err.Error())
	}

	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get config file info: %s", err.Error())
	}

	if !info.Mode().IsRegular() {
		return nil, errors.New("failed to read config file: config file must be a regular file")
	}

	var cfg FileConfig

	if strings.HasSuffix(path, ".yml") || strings.HasSuffix(path, ".yaml") {
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %s", err.Error())
		}
	} else if strings.HasSuffix(path, ".json") {
		if err := json.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %s", err.Error())
		}
	} else {
		return nil, errors.New("unsupported config file format")
	}

	return &cfg, nil
}

type FileConfig struct {
	Probes FileConfigProbesSection `yaml:"probes" json:"probes"`
}

type FileConfigProbesSection struct {
	Postgres map[string]readygate.PostgresProbeOptions `yaml:"postgres" json:"postgres"`
	Tcp      map[string]readygate.TcpProbeOptions      `yaml:"tcp" json:"tcp"`
	Http     map[string]readygate.HttpProbeOptions     `yaml:"http" json:"http"`
	Icmp     map[string]readygate.IcmpProbeOptions     `yaml:"icmp" json:"icmp"`
	Redis    map[string]readygate.RedisProbeOptions    `yaml:"redis" json:"redis"`
}

// Load turns every config section entry into a probe. Labels are the map
// keys, so they are unique within a section by construction.
func (this *FileConfigProbesSection) Load() []readygate.Probe {

	var probes []readygate.Probe

	for key, opts := range this.Postgres {
		probes = append(probes, &readygate.PostgresProbe{Label: key, PostgresProbeOptions: opts})
	}

	for key, opts := range this.Tcp {
		probes = append(probes, &readygate.TcpProbe{Label: key, TcpProbeOptions: opts})
	}

	for key, opts := range this.Http {
		probes = append(probes, &readygate.HttpProbe{Label: key, HttpProbeOptions: opts})
	}

	for key, opts := range this.Icmp {
		probes = append(probes, &readygate.IcmpProbe{Label: key, IcmpProbeOptions: opts})
	}

	for key, opts := range this.Redis {
		probes = append(probes, &readygate.RedisProbe{Label: key, RedisProbeOptions: opts})
	}

	return probes
}
