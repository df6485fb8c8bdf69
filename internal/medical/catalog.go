package medical

// Info is the type-erased summary of a Kind used by the section menu.
type Info struct {
	ID    string
	Title string
	Owned bool
}

func (k *Kind[R]) Info() Info {
	return Info{ID: k.ID, Title: k.Title, Owned: k.Owned}
}

// Catalog lists every record kind in menu order.
func Catalog() []Info {
	return []Info{
		Employees.Info(),
		Reports.Info(),
		MensHealthScreenings.Info(),
		Histories.Info(),
		Investigations.Info(),
	}
}

// Lookup finds a kind summary by id.
func Lookup(id string) (Info, bool) {
	for _, info := range Catalog() {
		if info.ID == id {
			return info, true
		}
	}
	return Info{}, false
}

// OwnedKinds lists the kinds that can be scoped to one employee.
func OwnedKinds() []Info {
	var out []Info
	for _, info := range Catalog() {
		if info.Owned {
			out = append(out, info)
		}
	}
	return out
}
