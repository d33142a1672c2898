// Package seed holds the bundled catalog and coupon data used when the remote
// catalog is unreachable or empty.
package seed

import "lablink/internal/models"

const kurnool = "Kurnool"

func offer(center string, price, mrp int64, rating float64, reviews int, tat string) models.CenterOffer {
	return models.CenterOffer{
		CenterName:     center,
		Price:          price,
		MRP:            mrp,
		Rating:         rating,
		ReviewCount:    reviews,
		Accredited:     true,
		TurnaroundTime: tat,
		Location:       kurnool,
	}
}

func lab(prep, sample, report string, params int, nabl bool) *models.LabDetails {
	return &models.LabDetails{
		Preparation:     prep,
		SampleType:      sample,
		ReportTime:      report,
		ParametersCount: params,
		NABL:            nabl,
	}
}

// Coupons is the fixed coupon table.
func Coupons() []models.Coupon {
	return []models.Coupon{
		{Code: "FIRST50", DiscountType: models.DiscountPercent, Value: 50, MinOrderValue: 500},
		{Code: "HEALTH100", DiscountType: models.DiscountFlat, Value: 100, MinOrderValue: 999},
	}
}

// Tests returns the bundled tests, packages and scans.
func Tests() []models.CatalogItem {
	return []models.CatalogItem{
		{
			ID:               "t1",
			Kind:             models.KindTest,
			Name:             "Complete Blood Count (CBC)",
			Category:         "General Health",
			Description:      "Evaluates overall health and screens for anemia, infection and other blood disorders.",
			ShortDescription: "Also known as: Hemogram, CBC with ESR",
			ImageURL:         "https://picsum.photos/400/200",
			Tags:             []string{"Popular"},
			Lab:              lab("No Fasting", "Blood (EDTA)", "24 Hours", 0, true),
			CenterOffers: []models.CenterOffer{
				offer("Vijaya Diagnostics", 350, 450, 4.8, 2000, "24 Hours"),
				offer("Lucid Diagnostics", 300, 400, 4.6, 850, "24 Hours"),
				offer("Apollo Medical Centre", 450, 550, 4.9, 1200, "12 Hours"),
			},
		},
		{
			ID:               "t2",
			Kind:             models.KindTest,
			Name:             "HbA1c",
			Category:         "Diabetes",
			Description:      "Average blood sugar level over the last three months.",
			ShortDescription: "Glycosylated Hemoglobin",
			Tags:             []string{"Gold Standard"},
			Lab:              lab("No Fasting", "Blood", "12 Hours", 0, true),
			CenterOffers: []models.CenterOffer{
				offer("Thyrocare", 400, 550, 4.7, 3000, "24 Hours"),
				offer("Vijaya Diagnostics", 450, 600, 4.8, 2500, "12 Hours"),
			},
		},
		{
			ID:               "t3",
			Kind:             models.KindTest,
			Name:             "Lipid Profile",
			Category:         "Heart",
			Description:      "Measures cholesterol and triglycerides to assess cardiovascular risk.",
			ShortDescription: "Cholesterol, Triglycerides & HDL/LDL",
			Lab:              lab("10-12 Hrs Fasting", "Blood", "24 Hours", 8, true),
			CenterOffers: []models.CenterOffer{
				offer("Lucid Diagnostics", 600, 800, 4.5, 500, "24 Hours"),
				offer("Apollo Medical Centre", 850, 1100, 4.9, 1500, "24 Hours"),
			},
		},
		{
			ID:               "p1",
			Kind:             models.KindPackage,
			Name:             "Full Body Checkup",
			Category:         "Full Body",
			Description:      "Comprehensive screening covering liver, kidney, lipid, thyroid and blood sugar.",
			ShortDescription: "60+ Tests: Liver, Kidney, Lipid & more",
			ImageURL:         "https://picsum.photos/400/200?random=2",
			Tags:             []string{"Safe", "Popular"},
			Lab:              lab("12 Hrs Fasting", "Blood & Urine", "48 Hours", 60, true),
			CenterOffers: []models.CenterOffer{
				offer("Thyrocare", 1500, 3000, 4.6, 5000, "48 Hours"),
				offer("Vijaya Diagnostics", 2500, 4000, 4.8, 2100, "36 Hours"),
			},
		},
		{
			ID:               "t4",
			Kind:             models.KindTest,
			Name:             "Thyroid Profile (Total)",
			Category:         "Thyroid",
			Description:      "Checks thyroid function through T3, T4 and TSH levels.",
			ShortDescription: "T3, T4, TSH",
			Lab:              lab("No Fasting", "Blood", "24 Hours", 3, true),
			CenterOffers: []models.CenterOffer{
				offer("Lucid Diagnostics", 500, 700, 4.5, 900, "24 Hours"),
				offer("Thyrocare", 450, 600, 4.7, 4000, "24 Hours"),
			},
		},
		{
			ID:               "t5",
			Kind:             models.KindTest,
			Name:             "Vitamin D Total",
			Category:         "Vitamins",
			Description:      "Measures 25-hydroxy vitamin D to detect deficiency.",
			ShortDescription: "25-Hydroxy Vitamin D",
			Lab:              lab("No Fasting", "Blood", "24 Hours", 0, true),
			CenterOffers: []models.CenterOffer{
				offer("Apollo Medical Centre", 1800, 2500, 4.9, 1000, "24 Hours"),
				offer("Vijaya Diagnostics", 1500, 2000, 4.8, 1500, "24 Hours"),
			},
		},
		{
			ID:               "s1",
			Kind:             models.KindScan,
			Name:             "CT Brain Plain",
			Category:         "CT Scan",
			Description:      "Non-contrast CT imaging of the head.",
			ShortDescription: "Non-Contrast CT Head",
			ImageURL:         "https://picsum.photos/400/200?random=30",
			Tags:             []string{"Most Booked"},
			Lab:              lab("No specific preparation", "N/A", "2 Hours", 0, false),
			CenterOffers: []models.CenterOffer{
				offer("Vijaya Diagnostics", 2500, 3000, 4.8, 120, "2 Hours"),
				offer("Lucid Diagnostics", 2200, 2800, 4.6, 80, "3 Hours"),
			},
		},
		{
			ID:               "s2",
			Kind:             models.KindScan,
			Name:             "USG Abdomen & Pelvis",
			Category:         "Ultrasound",
			Description:      "Ultrasound of the whole abdomen and pelvis.",
			ShortDescription: "Whole Abdomen Ultrasound",
			ImageURL:         "https://picsum.photos/400/200?random=31",
			Tags:             []string{"Most Booked"},
			Lab:              lab("Fasting 4-6 Hours, Full Bladder", "N/A", "1 Hour", 0, false),
			CenterOffers: []models.CenterOffer{
				offer("Apollo Diagnostics", 1200, 1500, 4.7, 200, "1 Hour"),
				offer("Vijaya Diagnostics", 1300, 1600, 4.8, 150, "1 Hour"),
			},
		},
		{
			ID:               "s3",
			Kind:             models.KindScan,
			Name:             "2D Echo & ECG",
			Category:         "Cardiology",
			Description:      "Echocardiogram together with an electrocardiogram.",
			ShortDescription: "Echocardiogram + Electrocardiogram",
			ImageURL:         "https://picsum.photos/400/200?random=32",
			Tags:             []string{"Most Booked"},
			Lab:              lab("No specific preparation", "N/A", "Immediate", 0, false),
			CenterOffers: []models.CenterOffer{
				offer("KIMS Hospitals", 2000, 2500, 4.9, 300, "30 Mins"),
			},
		},
		{
			ID:               "s4",
			Kind:             models.KindScan,
			Name:             "MRI Brain Plain",
			Category:         "MRI",
			Description:      "Magnetic resonance imaging of the brain without contrast.",
			ShortDescription: "Magnetic Resonance Imaging",
			ImageURL:         "https://picsum.photos/400/200?random=33",
			Tags:             []string{"Most Booked"},
			Lab:              lab("Remove metal objects", "N/A", "4 Hours", 0, false),
			CenterOffers: []models.CenterOffer{
				offer("Vijaya Diagnostics", 5500, 7000, 4.8, 90, "4 Hours"),
				offer("Lucid Diagnostics", 5000, 6500, 4.7, 60, "6 Hours"),
			},
		},
		{
			ID:               "s5",
			Kind:             models.KindScan,
			Name:             "CHEST X RAY PA VIEW",
			Category:         "X-Ray",
			Description:      "Digital chest X-ray, posteroanterior view.",
			ShortDescription: "Digital X-Ray Chest",
			ImageURL:         "https://picsum.photos/400/200?random=34",
			Tags:             []string{"Most Booked"},
			Lab:              lab("Remove jewellery", "N/A", "30 Mins", 0, false),
			CenterOffers: []models.CenterOffer{
				offer("City X-Ray", 400, 500, 4.5, 1000, "30 Mins"),
				offer("Vijaya Diagnostics", 500, 600, 4.8, 200, "1 Hour"),
			},
		},
	}
}

// Doctors returns the bundled doctor listings.
func Doctors() []models.CatalogItem {
	return []models.CatalogItem{
		{
			ID:          "d1",
			Kind:        models.KindDoctor,
			Name:        "Dr. T Karthik",
			Category:    "General Physician",
			Description: "MBBS, MD - Consultant Physician and Diabetes Specialist.",
			ImageURL:    "https://picsum.photos/400/400?random=20",
			Tags:        []string{"Diabetes Specialist", "Available"},
			Doctor: &models.DoctorDetails{
				Specialty:  "Physician & Diabetologist",
				Experience: "6 Years",
				About:      "Manages diabetes, hypertension and infectious diseases.",
			},
			CenterOffers: []models.CenterOffer{
				offer("Karthik Clinic", 400, 400, 4.8, 150, "N/A"),
			},
		},
		{
			ID:          "d2",
			Kind:        models.KindDoctor,
			Name:        "Dr. K Ramya",
			Category:    "Dermatologist",
			Description: "MBBS, MD - Dermatologist and Cosmetologist.",
			ImageURL:    "https://picsum.photos/400/400?random=21",
			Tags:        []string{"Skin Care", "Hair Treatment"},
			Doctor: &models.DoctorDetails{
				Specialty:  "Dermatologist & Cosmetologist",
				Experience: "3 Years",
				About:      "Clinical dermatology and cosmetology: acne, pigmentation and hair loss.",
			},
			CenterOffers: []models.CenterOffer{
				offer("Ramya Skin Care", 500, 500, 4.7, 95, "N/A"),
			},
		},
		{
			ID:          "d3",
			Kind:        models.KindDoctor,
			Name:        "Dr. D V Subba Reddy",
			Category:    "Orthopedics",
			Description: "MBBS, MS - Orthopaedic Surgeon.",
			ImageURL:    "https://picsum.photos/400/400?random=22",
			Tags:        []string{"Bone Specialist", "Surgeon"},
			Doctor: &models.DoctorDetails{
				Specialty:  "Orthopaedic Surgeon",
				Experience: "10 Years",
				About:      "Trauma, joint replacement and arthroscopy.",
			},
			CenterOffers: []models.CenterOffer{
				offer("Ortho Care Hospital", 600, 600, 4.9, 320, "N/A"),
			},
		},
	}
}
