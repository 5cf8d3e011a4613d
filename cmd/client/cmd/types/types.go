package types

// ContextKey — ключ значений в контексте команд
type ContextKey string

// ClientAppKey — собранное клиентское приложение, кладется в контекст
// корневой командой
const ClientAppKey ContextKey = "app"
