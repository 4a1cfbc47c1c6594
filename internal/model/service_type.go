package model

// ServiceType вид услуг: барбершоп, парикмахерская, маникюр и т.д.
type ServiceType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
