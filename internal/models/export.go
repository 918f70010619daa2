package models

// Exported views expand related entities one level deep and never follow the edge
// they were reached through, so a connected graph serializes without cycles.

// RestaurantView is the external representation of a Restaurant
type RestaurantView struct {
	ID               uint                  `json:"id"`
	Name             string                `json:"name"`
	Address          string                `json:"address"`
	RestaurantPizzas []RestaurantPizzaView `json:"restaurant_pizzas,omitempty"`
}

// PizzaView is the external representation of a Pizza
type PizzaView struct {
	ID               uint                  `json:"id"`
	Name             string                `json:"name"`
	Ingredients      string                `json:"ingredients"`
	RestaurantPizzas []RestaurantPizzaView `json:"restaurant_pizzas,omitempty"`
}

// RestaurantPizzaView is the external representation of a RestaurantPizza
type RestaurantPizzaView struct {
	ID           uint            `json:"id"`
	Price        int             `json:"price"`
	PizzaID      uint            `json:"pizza_id"`
	RestaurantID uint            `json:"restaurant_id"`
	Pizza        *PizzaView      `json:"pizza,omitempty"`
	Restaurant   *RestaurantView `json:"restaurant,omitempty"`
}

// Summary returns own attributes only
func (r *Restaurant) Summary() RestaurantView {
	return RestaurantView{ID: r.ID, Name: r.Name, Address: r.Address}
}

// Summary returns own attributes only
func (p *Pizza) Summary() PizzaView {
	return PizzaView{ID: p.ID, Name: p.Name, Ingredients: p.Ingredients}
}

// Export includes the restaurant's join rows with their pizza, but not the restaurant again.
func (r *Restaurant) Export() RestaurantView {
	view := r.Summary()
	view.RestaurantPizzas = make([]RestaurantPizzaView, 0, len(r.RestaurantPizzas))
	for i := range r.RestaurantPizzas {
		rp := &r.RestaurantPizzas[i]
		row := rp.row()
		if rp.Pizza != nil {
			pizza := rp.Pizza.Summary()
			row.Pizza = &pizza
		}
		view.RestaurantPizzas = append(view.RestaurantPizzas, row)
	}
	return view
}

// Export includes the pizza's join rows with their restaurant, but not the pizza again.
func (p *Pizza) Export() PizzaView {
	view := p.Summary()
	view.RestaurantPizzas = make([]RestaurantPizzaView, 0, len(p.RestaurantPizzas))
	for i := range p.RestaurantPizzas {
		rp := &p.RestaurantPizzas[i]
		row := rp.row()
		if rp.Restaurant != nil {
			restaurant := rp.Restaurant.Summary()
			row.Restaurant = &restaurant
		}
		view.RestaurantPizzas = append(view.RestaurantPizzas, row)
	}
	return view
}

// Export includes both parents without their own join row lists.
func (rp *RestaurantPizza) Export() RestaurantPizzaView {
	row := rp.row()
	if rp.Pizza != nil {
		pizza := rp.Pizza.Summary()
		row.Pizza = &pizza
	}
	if rp.Restaurant != nil {
		restaurant := rp.Restaurant.Summary()
		row.Restaurant = &restaurant
	}
	return row
}

func (rp *RestaurantPizza) row() RestaurantPizzaView {
	return RestaurantPizzaView{
		ID:           rp.ID,
		Price:        rp.Price,
		PizzaID:      rp.PizzaID,
		RestaurantID: rp.RestaurantID,
	}
}
