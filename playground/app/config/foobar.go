package config

type FoobarConfig struct {
	Name string
}

func (c *FoobarConfig) ApplyDefault() {
	if c.Name == "" {
		c.Name = "world"
	}
}
