package health

type FakeConfigInspector struct {
	Missing     []string
	EmailIssues []string
	Env         string
}

func NewFakeConfigInspector() *FakeConfigInspector {
	return &FakeConfigInspector{Env: "test"}
}

func (c *FakeConfigInspector) MissingRequired() []string {
	return c.Missing
}

func (c *FakeConfigInspector) EmailConfigIssues() []string {
	return c.EmailIssues
}

func (c *FakeConfigInspector) Environment() string {
	return c.Env
}
