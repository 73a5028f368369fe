package links

// SetIDFunc replaces the id generator so tests can observe minted ids.
func (c *Collection) SetIDFunc(f func() string) {
	c.newID = f
}
