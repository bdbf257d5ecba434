// SPDX-License-Identifier: GPL-3.0-or-later

package k8ssd

type Config struct {
	Namespaces []string `yaml:"namespaces"`
	Selector   struct {
		Label string `yaml:"label"`
		Field string `yaml:"field"`
	} `yaml:"selector"`
}
