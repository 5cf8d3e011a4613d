package middleware

import "github.com/danielgtaylor/huma/v2"

// Container накапливает middleware для очередного хендлера. Add вызывается
// в порядке обертывания, GetAllAndClear отдает набор и очищает контейнер
// под следующий хендлер.
type Container struct {
	list huma.Middlewares
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Add(mw func(huma.Context, func(huma.Context))) {
	c.list = append(c.list, mw)
}

func (c *Container) GetAllAndClear() huma.Middlewares {
	out := c.list
	c.list = nil
	return out
}
